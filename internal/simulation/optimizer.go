package simulation

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/yigit/academictwin/internal/pkg/evolution"
)

const (
	// FailurePenalty scores a candidate whose simulation could not complete.
	FailurePenalty = 1e6

	// MaxNightlySleep is the upper sleep bound of the search box.
	MaxNightlySleep = 10.0

	// strategyUpper keeps the floored index inside the strategy table.
	strategyUpper = 2.99
)

// Runner is the part of Engine the optimizer depends on.
type Runner interface {
	Run(cfg ScenarioConfig, courses []CourseRef, student *StudentProfile) (*SimulationResult, error)
}

// OptimizerOptions configures an Optimizer.
type OptimizerOptions struct {
	// Search tunes the differential evolution. Zero fields take the
	// evolution package defaults (population 10 per dimension, 50
	// generations, seed 42).
	Search evolution.Config
	Logger zerolog.Logger
}

// Optimizer searches work hours, nightly sleep and study strategy for the
// schedule that minimizes an objective score.
type Optimizer struct {
	runner Runner
	search evolution.Config
	log    zerolog.Logger
}

// NewOptimizer wraps runner.
func NewOptimizer(runner Runner, opts OptimizerOptions) *Optimizer {
	return &Optimizer{
		runner: runner,
		search: opts.Search,
		log:    opts.Logger,
	}
}

// BurnoutScore maps a risk label to the value the optimizer minimizes.
func BurnoutScore(risk BurnoutRisk) float64 {
	switch risk {
	case BurnoutLow:
		return 0.1
	case BurnoutMedium:
		return 0.5
	default:
		return 0.9
	}
}

// StrategyFromIndex floors x and maps it to spaced, mixed or cramming.
// Out-of-range values are pinned to the nearest end.
func StrategyFromIndex(x float64) StudyStrategy {
	i := int(math.Floor(x))
	if i < 0 {
		i = 0
	}
	if i >= len(Strategies) {
		i = len(Strategies) - 1
	}
	return Strategies[i]
}

// Score reduces a finished run to the scalar minimized for objective.
// Unknown objectives score as balanced.
func Score(objective Objective, res *SimulationResult) float64 {
	gpa := res.Summary.PredictedGPAMean
	burnout := BurnoutScore(res.Summary.BurnoutRisk)
	switch objective {
	case ObjectiveMaximizeGPA:
		return -gpa
	case ObjectiveMinimizeBurnout:
		return burnout
	default:
		return 0.6*(-gpa) + 0.4*burnout
	}
}

// Optimize runs the search for req and then a full simulation at the
// optimum. Failed candidate runs score FailurePenalty and never abort the
// search; only the final run can return an error.
//
// TargetMinGPA in the constraints is not enforced. The per-course study
// hours in the result are the final week's deep-study time split evenly
// across courses, not an independent optimum per course.
func (o *Optimizer) Optimize(student *StudentProfile, courses []CourseRef, req OptimizationRequest) (*OptimizationResult, error) {
	if len(courses) == 0 {
		return nil, ErrNoCoursesSelected
	}

	ids := make([]int64, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	var studentID int64
	if student != nil {
		studentID = student.ID
	}

	build := func(x []float64) ScenarioConfig {
		return ScenarioConfig{
			StudentID:        studentID,
			NumWeeks:         req.NumWeeks,
			WorkHoursPerWeek: x[0],
			SleepTargetHours: x[1],
			StudyStrategy:    StrategyFromIndex(x[2]),
			IncludeCourseIDs: ids,
		}
	}

	bounds := []evolution.Bounds{
		{Lower: 0, Upper: req.Constraints.MaxWorkHoursPerWeek},
		{Lower: req.Constraints.MinSleepHours, Upper: MaxNightlySleep},
		{Lower: 0, Upper: strategyUpper},
	}

	objective := func(x []float64) float64 {
		return o.evaluate(build(x), courses, student, req.Objective)
	}

	found, err := evolution.Minimize(objective, bounds, o.search)
	if err != nil {
		return nil, fmt.Errorf("optimize schedule: %w", err)
	}

	o.log.Debug().
		Str("objective", string(req.Objective)).
		Int("generations", found.Generations).
		Int("evaluations", found.Evaluations).
		Bool("converged", found.Converged).
		Float64("energy", found.Energy).
		Msg("Schedule search finished")

	cfg := build(found.X)
	final, err := o.runner.Run(cfg, courses, student)
	if err != nil {
		return nil, err
	}

	perCourse := make(map[string]float64, len(courses))
	if n := len(final.WeeklySnapshots); n > 0 {
		deep := final.WeeklySnapshots[n-1].TimeAllocation.DeepStudyHours
		for _, c := range courses {
			perCourse[c.Name] = deep / float64(len(courses))
		}
	}

	return &OptimizationResult{
		Objective:                   req.Objective,
		OptimalWorkHours:            cfg.WorkHoursPerWeek,
		OptimalSleepHours:           cfg.SleepTargetHours,
		OptimalStudyHoursPerCourse:  perCourse,
		OptimalStudyStrategy:        cfg.StudyStrategy,
		PredictedGPA:                final.Summary.PredictedGPAMean,
		PredictedBurnoutProbability: final.Summary.BurnoutProbability,
		Generations:                 found.Generations,
		Evaluations:                 found.Evaluations,
		Converged:                   found.Converged,
		SimulationResult:            final,
	}, nil
}

// evaluate never fails: errors, panics and NaN all become FailurePenalty.
func (o *Optimizer) evaluate(cfg ScenarioConfig, courses []CourseRef, student *StudentProfile, objective Objective) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warn().Interface("panic", r).Msg("Candidate simulation panicked")
			score = FailurePenalty
		}
	}()

	res, err := o.runner.Run(cfg, courses, student)
	if err != nil || res == nil {
		return FailurePenalty
	}
	s := Score(objective, res)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return FailurePenalty
	}
	return s
}
