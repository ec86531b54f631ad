package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/academictwin/internal/app/auth"
	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/app/repositories"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/logger"
	"github.com/yigit/academictwin/internal/pkg/validation"
	"github.com/yigit/academictwin/internal/simulation"
)

// ScheduleOptimizer is the part of simulation.Optimizer the service uses.
type ScheduleOptimizer interface {
	Optimize(student *simulation.StudentProfile, courses []simulation.CourseRef, req simulation.OptimizationRequest) (*simulation.OptimizationResult, error)
}

// OptimizationService defines the interface for schedule optimization
type OptimizationService interface {
	Optimize(ctx context.Context, req *dto.OptimizeRequest) (*simulation.OptimizationResult, error)
}

type optimizationServiceImpl struct {
	studentRepo repositories.IStudentRepository
	courseRepo  repositories.ICourseRepository
	optimizer   ScheduleOptimizer
}

// NewOptimizationService creates a new OptimizationService
func NewOptimizationService(studentRepo repositories.IStudentRepository, courseRepo repositories.ICourseRepository, optimizer ScheduleOptimizer) OptimizationService {
	return &optimizationServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		optimizer:   optimizer,
	}
}

// Optimize searches for the schedule that best serves the requested
// objective for the student's enrolled courses.
func (s *optimizationServiceImpl) Optimize(ctx context.Context, req *dto.OptimizeRequest) (*simulation.OptimizationResult, error) {
	optReq := req.Optimization()
	if err := validation.ValidateOptimization(optReq); err != nil {
		return nil, err
	}
	if err := auth.AuthorizeStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	if len(courses) == 0 {
		return nil, apperrors.ErrNoCoursesEnrolled
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := s.optimizer.Optimize(student.Profile(), models.CourseRefs(courses), optReq)
	if err != nil {
		if errors.Is(err, simulation.ErrNoCoursesSelected) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("error optimizing schedule: %w", err)
	}

	logger.Info().
		Int64("studentID", req.StudentID).
		Str("objective", string(optReq.Objective)).
		Float64("predictedGPA", result.PredictedGPA).
		Float64("burnoutProbability", result.PredictedBurnoutProbability).
		Int("generations", result.Generations).
		Msg("Schedule optimized")
	return result, nil
}
