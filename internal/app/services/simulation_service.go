package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yigit/academictwin/internal/app/auth"
	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/app/repositories"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/helpers"
	"github.com/yigit/academictwin/internal/pkg/logger"
	"github.com/yigit/academictwin/internal/pkg/validation"
	"github.com/yigit/academictwin/internal/simulation"
)

// SimulationService defines the interface for simulation runs
type SimulationService interface {
	RunSimulation(ctx context.Context, req *dto.RunSimulationRequest) (*simulation.SimulationResult, error)
	GetSimulation(ctx context.Context, id int64) (*simulation.SimulationResult, error)
	ListSimulations(ctx context.Context, studentID int64, page, size int) (*dto.PaginatedResponse, error)
	DeleteSimulation(ctx context.Context, id int64) error
	CompareSimulations(ctx context.Context, aID, bID int64) (*dto.SimulationComparison, error)
	RunBatch(ctx context.Context, req *dto.BatchSimulationRequest) (*dto.BatchSimulationResponse, error)
}

type simulationServiceImpl struct {
	studentRepo repositories.IStudentRepository
	courseRepo  repositories.ICourseRepository
	runRepo     repositories.ISimulationRunRepository
	engine      simulation.Runner
	opts        Options
}

// NewSimulationService creates a new SimulationService
func NewSimulationService(
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	runRepo repositories.ISimulationRunRepository,
	engine simulation.Runner,
	opts Options,
) SimulationService {
	if opts.BatchWorkers < 1 {
		opts.BatchWorkers = 1
	}
	if opts.MaxBatchSize < 1 {
		opts.MaxBatchSize = 10
	}
	return &simulationServiceImpl{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		runRepo:     runRepo,
		engine:      engine,
		opts:        opts,
	}
}

// RunSimulation simulates the scenario against the student's enrolled
// courses and stores the result.
func (s *simulationServiceImpl) RunSimulation(ctx context.Context, req *dto.RunSimulationRequest) (*simulation.SimulationResult, error) {
	cfg := req.Scenario(req.StudentID)
	if err := validation.ValidateScenario(cfg); err != nil {
		return nil, err
	}

	student, courses, err := s.loadInputs(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	result, err := s.simulate(ctx, cfg, courses, student)
	if err != nil {
		return nil, err
	}

	run := &models.SimulationRun{
		StudentID:      req.StudentID,
		ScenarioConfig: result.ScenarioConfig,
		ScenarioName:   helpers.NilIfEmpty(cfg.ScenarioName),
		Results:        result,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("error storing simulation run: %w", err)
	}

	logger.Info().
		Int64("runID", run.ID).
		Int64("studentID", run.StudentID).
		Float64("predictedGPA", result.Summary.PredictedGPAMean).
		Str("burnoutRisk", string(result.Summary.BurnoutRisk)).
		Msg("Simulation run stored")

	return run.Result(), nil
}

// GetSimulation returns a stored run.
func (s *simulationServiceImpl) GetSimulation(ctx context.Context, id int64) (*simulation.SimulationResult, error) {
	run, err := s.loadRun(ctx, id)
	if err != nil {
		return nil, err
	}
	return run.Result(), nil
}

// ListSimulations returns one page of the student's runs, newest first.
func (s *simulationServiceImpl) ListSimulations(ctx context.Context, studentID int64, page, size int) (*dto.PaginatedResponse, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	runs, total, err := s.runRepo.ListByStudent(ctx, studentID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving simulation runs: %w", err)
	}

	items := make([]dto.SimulationRunListItem, len(runs))
	for i, run := range runs {
		items[i] = dto.NewSimulationRunListItem(run)
	}
	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, int(limit)),
	}, nil
}

// DeleteSimulation removes a stored run.
func (s *simulationServiceImpl) DeleteSimulation(ctx context.Context, id int64) error {
	if _, err := s.loadRun(ctx, id); err != nil {
		return err
	}
	return s.runRepo.Delete(ctx, id)
}

// CompareSimulations places two stored runs side by side.
func (s *simulationServiceImpl) CompareSimulations(ctx context.Context, aID, bID int64) (*dto.SimulationComparison, error) {
	a, err := s.loadRun(ctx, aID)
	if err != nil {
		return nil, err
	}
	b, err := s.loadRun(ctx, bID)
	if err != nil {
		return nil, err
	}
	if a.Results == nil || b.Results == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrConflict, "stored run has no results")
	}
	cmp := dto.NewSimulationComparison(a.Result(), b.Result())
	return &cmp, nil
}

// RunBatch simulates several scenarios for one student concurrently. The
// results are returned in request order and are not stored.
func (s *simulationServiceImpl) RunBatch(ctx context.Context, req *dto.BatchSimulationRequest) (*dto.BatchSimulationResponse, error) {
	if len(req.Scenarios) > s.opts.MaxBatchSize {
		return nil, apperrors.NewCustomError(apperrors.ErrBatchTooLarge,
			fmt.Sprintf("a batch may hold at most %d scenarios, got %d", s.opts.MaxBatchSize, len(req.Scenarios)))
	}
	if len(req.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: at least one scenario is required", apperrors.ErrValidationFailed)
	}

	configs := make([]simulation.ScenarioConfig, len(req.Scenarios))
	for i, sc := range req.Scenarios {
		configs[i] = sc.Scenario(req.StudentID)
		if err := validation.ValidateScenario(configs[i]); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
	}

	student, courses, err := s.loadInputs(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	results := make([]*simulation.SimulationResult, len(configs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.BatchWorkers)
	for i := range configs {
		i := i
		g.Go(func() error {
			res, err := s.simulate(gctx, configs[i], courses, student)
			if err != nil {
				return fmt.Errorf("scenario %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := dto.NewBatchSimulationResponse(results)
	return &resp, nil
}

func (s *simulationServiceImpl) simulate(ctx context.Context, cfg simulation.ScenarioConfig, courses []simulation.CourseRef, student *simulation.StudentProfile) (*simulation.SimulationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := s.engine.Run(cfg, courses, student)
	if err != nil {
		if errors.Is(err, simulation.ErrNoCoursesSelected) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("error running simulation: %w", err)
	}
	return result, nil
}

func (s *simulationServiceImpl) loadInputs(ctx context.Context, studentID int64) (*simulation.StudentProfile, []simulation.CourseRef, error) {
	if err := auth.AuthorizeStudent(ctx, studentID); err != nil {
		return nil, nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	courses, err := s.courseRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	if len(courses) == 0 {
		return nil, nil, apperrors.ErrNoCoursesEnrolled
	}
	return student.Profile(), models.CourseRefs(courses), nil
}

func (s *simulationServiceImpl) loadRun(ctx context.Context, id int64) (*models.SimulationRun, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid simulation ID", apperrors.ErrValidationFailed)
	}
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeStudent(ctx, run.StudentID); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *simulationServiceImpl) requireStudent(ctx context.Context, studentID int64) error {
	if studentID <= 0 {
		return fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	if err := auth.AuthorizeStudent(ctx, studentID); err != nil {
		return err
	}
	_, err := s.studentRepo.GetByID(ctx, studentID)
	return err
}
