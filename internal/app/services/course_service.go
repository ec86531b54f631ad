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
	"github.com/yigit/academictwin/internal/pkg/validation"
)

// Course attribute defaults, matching the column defaults.
const (
	DefaultDifficultyScore     = 5.0
	DefaultWeeklyWorkloadHours = 3.0
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, studentID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, studentID int64) ([]dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo  repositories.ICourseRepository
	studentRepo repositories.IStudentRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, studentRepo repositories.IStudentRepository) CourseService {
	return &courseServiceImpl{
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
	}
}

// CreateCourse enrolls an existing student in a course.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, studentID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	course := &models.Course{
		StudentID:           studentID,
		Name:                strings.TrimSpace(req.Name),
		Credits:             req.Credits,
		DifficultyScore:     DefaultDifficultyScore,
		WeeklyWorkloadHours: DefaultWeeklyWorkloadHours,
		AssessmentStructure: models.AssessmentStructure(req.AssessmentStructure),
	}
	if req.DifficultyScore != nil {
		course.DifficultyScore = *req.DifficultyScore
	}
	if req.WeeklyWorkloadHours != nil {
		course.WeeklyWorkloadHours = *req.WeeklyWorkloadHours
	}

	if err := validation.ValidateCourse(course.Ref()); err != nil {
		return nil, err
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// ListCourses returns the student's courses in enrollment order.
func (s *courseServiceImpl) ListCourses(ctx context.Context, studentID int64) ([]dto.CourseResponse, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return dto.NewCourseResponses(courses), nil
}

// DeleteCourse removes a course owned by the caller.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeStudent(ctx, course.StudentID); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}

func (s *courseServiceImpl) requireStudent(ctx context.Context, studentID int64) error {
	if studentID <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	if err := auth.AuthorizeStudent(ctx, studentID); err != nil {
		return err
	}
	_, err := s.studentRepo.GetByID(ctx, studentID)
	return err
}
