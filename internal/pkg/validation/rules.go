package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/simulation"
)

// Validation rule patterns
var (
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	NameMaxLength = 255
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// Range is an inclusive numeric bound on a named field.
type Range struct {
	Field string
	Min   float64
	Max   float64
}

// Check reports a validation error when value lies outside the range.
func (r Range) Check(value float64) error {
	if value < r.Min || value > r.Max {
		return fmt.Errorf("%w: %s must be between %g and %g", apperrors.ErrValidationFailed, r.Field, r.Min, r.Max)
	}
	return nil
}

// Bounds accepted at the API and CLI boundary. The simulation core trusts
// its inputs and never re-checks them.
var (
	NumWeeksRange       = Range{Field: "numWeeks", Min: 4, Max: 20}
	WorkHoursRange      = Range{Field: "workHoursPerWeek", Min: 0, Max: 60}
	SleepHoursRange     = Range{Field: "sleepTargetHours", Min: 4, Max: 12}
	MaxWorkRange        = Range{Field: "maxWorkHoursPerWeek", Min: 0, Max: 60}
	MinSleepRange       = Range{Field: "minSleepHours", Min: 4, Max: 10}
	TargetGPARange      = Range{Field: "targetGpa", Min: 0, Max: 4}
	CreditsRange        = Range{Field: "credits", Min: 1, Max: 6}
	DifficultyRange     = Range{Field: "difficultyScore", Min: 1, Max: 10}
	WeeklyWorkloadRange = Range{Field: "weeklyWorkloadHours", Min: 0.5, Max: 20}
)

// IsStrategy reports whether s names a known study strategy.
func IsStrategy(s string) bool {
	for _, st := range simulation.Strategies {
		if string(st) == s {
			return true
		}
	}
	return false
}

// IsObjective reports whether s names a known optimization objective.
func IsObjective(s string) bool {
	switch simulation.Objective(s) {
	case simulation.ObjectiveMaximizeGPA, simulation.ObjectiveMinimizeBurnout, simulation.ObjectiveBalanced:
		return true
	}
	return false
}

// ValidateEmail checks the address shape.
func ValidateEmail(email string) error {
	if !CompiledPatterns.Email.MatchString(email) {
		return fmt.Errorf("%w: email %q is not a valid address", apperrors.ErrInvalidEmail, email)
	}
	return nil
}

// ValidateName rejects blank or overlong names.
func ValidateName(field, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: %s cannot be empty", apperrors.ErrValidationFailed, field)
	}
	if len(trimmed) > NameMaxLength {
		return fmt.Errorf("%w: %s must be at most %d characters", apperrors.ErrValidationFailed, field, NameMaxLength)
	}
	return nil
}

// ValidateScenario checks every tunable field of a scenario.
func ValidateScenario(cfg simulation.ScenarioConfig) error {
	if err := NumWeeksRange.Check(float64(cfg.NumWeeks)); err != nil {
		return err
	}
	if err := WorkHoursRange.Check(cfg.WorkHoursPerWeek); err != nil {
		return err
	}
	if err := SleepHoursRange.Check(cfg.SleepTargetHours); err != nil {
		return err
	}
	if !IsStrategy(string(cfg.StudyStrategy)) {
		return fmt.Errorf("%w: studyStrategy %q must be one of spaced, mixed, cramming", apperrors.ErrValidationFailed, cfg.StudyStrategy)
	}
	return nil
}

// ValidateCourse checks the simulated attributes of a course.
func ValidateCourse(c simulation.CourseRef) error {
	if err := ValidateName("name", c.Name); err != nil {
		return err
	}
	if err := CreditsRange.Check(float64(c.Credits)); err != nil {
		return err
	}
	if err := DifficultyRange.Check(c.DifficultyScore); err != nil {
		return err
	}
	return WeeklyWorkloadRange.Check(c.WeeklyWorkloadHours)
}

// ValidateOptimization checks an optimization request. An unknown
// objective is rejected here even though the optimizer would score it as
// balanced.
func ValidateOptimization(req simulation.OptimizationRequest) error {
	if err := NumWeeksRange.Check(float64(req.NumWeeks)); err != nil {
		return err
	}
	if err := MaxWorkRange.Check(req.Constraints.MaxWorkHoursPerWeek); err != nil {
		return err
	}
	if err := MinSleepRange.Check(req.Constraints.MinSleepHours); err != nil {
		return err
	}
	if err := TargetGPARange.Check(req.Constraints.TargetMinGPA); err != nil {
		return err
	}
	if !IsObjective(string(req.Objective)) {
		return fmt.Errorf("%w: objective %q must be one of maximize_gpa, minimize_burnout, balanced", apperrors.ErrValidationFailed, req.Objective)
	}
	return nil
}
