package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/academictwin/internal/app/auth"
	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/app/repositories"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/logger"
	"github.com/yigit/academictwin/internal/pkg/validation"
)

// Profile defaults applied when a create request leaves a field out.
const (
	DefaultTargetGPA        = 3.0
	DefaultSleepTargetHours = 7.0
)

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
}

type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

func (s *studentServiceImpl) validateStudent(student *models.Student) error {
	if err := validation.ValidateName("name", student.Name); err != nil {
		return err
	}
	if err := validation.ValidateEmail(student.Email); err != nil {
		return err
	}
	if err := validation.TargetGPARange.Check(student.TargetGPA); err != nil {
		return err
	}
	if err := validation.WorkHoursRange.Check(student.WeeklyWorkHours); err != nil {
		return err
	}
	return validation.SleepHoursRange.Check(student.SleepTargetHours)
}

// CreateStudent registers a new student profile.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	student := &models.Student{
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.ToLower(strings.TrimSpace(req.Email)),
		TargetGPA:        DefaultTargetGPA,
		SleepTargetHours: DefaultSleepTargetHours,
	}
	if req.TargetGPA != nil {
		student.TargetGPA = *req.TargetGPA
	}
	if req.WeeklyWorkHours != nil {
		student.WeeklyWorkHours = *req.WeeklyWorkHours
	}
	if req.SleepTargetHours != nil {
		student.SleepTargetHours = *req.SleepTargetHours
	}

	if err := s.validateStudent(student); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Int64("studentID", student.ID).Msg("Student created")
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.loadStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// UpdateStudent applies the fields present in req.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.loadStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		student.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.TargetGPA != nil {
		student.TargetGPA = *req.TargetGPA
	}
	if req.WeeklyWorkHours != nil {
		student.WeeklyWorkHours = *req.WeeklyWorkHours
	}
	if req.SleepTargetHours != nil {
		student.SleepTargetHours = *req.SleepTargetHours
	}

	if err := s.validateStudent(student); err != nil {
		return nil, err
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

func (s *studentServiceImpl) loadStudent(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	if err := auth.AuthorizeStudent(ctx, id); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}
