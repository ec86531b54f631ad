package simulation

import "time"

// StudyStrategy selects the deep/shallow split and the retention modifiers.
type StudyStrategy string

// Study strategies. Unrecognized values are accepted and treated like mixed.
const (
	StrategySpaced   StudyStrategy = "spaced"
	StrategyMixed    StudyStrategy = "mixed"
	StrategyCramming StudyStrategy = "cramming"
)

// Strategies lists the recognized strategies in optimizer index order.
var Strategies = []StudyStrategy{StrategySpaced, StrategyMixed, StrategyCramming}

// BurnoutRisk is the coarse label derived from a burnout probability.
type BurnoutRisk string

// Burnout risk labels
const (
	BurnoutLow    BurnoutRisk = "LOW"
	BurnoutMedium BurnoutRisk = "MEDIUM"
	BurnoutHigh   BurnoutRisk = "HIGH"
)

// CourseRef is the read-only course reference consumed by the models.
type CourseRef struct {
	ID                  int64   `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	Credits             int     `json:"credits" yaml:"credits"`
	DifficultyScore     float64 `json:"difficultyScore" yaml:"difficulty_score"`
	WeeklyWorkloadHours float64 `json:"weeklyWorkloadHours" yaml:"weekly_workload_hours"`
}

// StudentProfile carries advisory student targets. The engine never reads
// them; the scenario configuration governs every run.
type StudentProfile struct {
	ID               int64   `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	Email            string  `json:"email" yaml:"email"`
	TargetGPA        float64 `json:"targetGpa" yaml:"target_gpa"`
	WeeklyWorkHours  float64 `json:"weeklyWorkHours" yaml:"weekly_work_hours"`
	SleepTargetHours float64 `json:"sleepTargetHours" yaml:"sleep_target_hours"`
}

// ScenarioConfig is one fully parameterized semester.
type ScenarioConfig struct {
	StudentID        int64         `json:"studentId" yaml:"student_id"`
	NumWeeks         int           `json:"numWeeks" yaml:"num_weeks"`
	WorkHoursPerWeek float64       `json:"workHoursPerWeek" yaml:"work_hours_per_week"`
	SleepTargetHours float64       `json:"sleepTargetHours" yaml:"sleep_target_hours"` // nightly
	StudyStrategy    StudyStrategy `json:"studyStrategy" yaml:"study_strategy"`
	IncludeCourseIDs []int64       `json:"includeCourseIds" yaml:"include_course_ids"`
	ScenarioName     string        `json:"scenarioName,omitempty" yaml:"scenario_name"`
}

// DefaultScenarioConfig returns the scenario defaults used by the API.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		NumWeeks:         16,
		WorkHoursPerWeek: 0,
		SleepTargetHours: 7,
		StudyStrategy:    StrategySpaced,
		IncludeCourseIDs: []int64{},
	}
}

// TimeAllocation splits the 168-hour week into buckets.
type TimeAllocation struct {
	ClassHours        float64 `json:"classHours"`
	WorkHours         float64 `json:"workHours"`
	SleepHours        float64 `json:"sleepHours"`
	DeepStudyHours    float64 `json:"deepStudyHours"`
	ShallowStudyHours float64 `json:"shallowStudyHours"`
	RecoveryHours     float64 `json:"recoveryHours"`
	SocialHours       float64 `json:"socialHours"`
	PersonalHours     float64 `json:"personalHours"`
	TotalHours        float64 `json:"totalHours"`
	IsOverloaded      bool    `json:"isOverloaded"`
}

// StudyHours is the combined deep and shallow study time.
func (a TimeAllocation) StudyHours() float64 {
	return a.DeepStudyHours + a.ShallowStudyHours
}

// WeeklySnapshot is the display-rounded state emitted after each week.
type WeeklySnapshot struct {
	Week               int                `json:"week"`
	CognitiveLoad      float64            `json:"cognitiveLoad"`
	PredictedGPA       float64            `json:"predictedGpa"`
	BurnoutProbability float64            `json:"burnoutProbability"`
	FatigueLevel       float64            `json:"fatigueLevel"`
	RetentionScore     float64            `json:"retentionScore"`
	TimeAllocation     TimeAllocation     `json:"timeAllocation"`
	CourseGrades       map[string]float64 `json:"courseGrades"`
	CourseRetentions   map[string]float64 `json:"courseRetentions"`
}

// SimulationSummary reduces the snapshot sequence.
type SimulationSummary struct {
	PredictedGPAMin           float64     `json:"predictedGpaMin"`
	PredictedGPAMax           float64     `json:"predictedGpaMax"`
	PredictedGPAMean          float64     `json:"predictedGpaMean"`
	BurnoutRisk               BurnoutRisk `json:"burnoutRisk"`
	BurnoutProbability        float64     `json:"burnoutProbability"`
	PeakOverloadWeeks         []int       `json:"peakOverloadWeeks"`
	RequiredStudyHoursPerWeek float64     `json:"requiredStudyHoursPerWeek"`
	SleepDeficitHours         float64     `json:"sleepDeficitHours"`
	Recommendation            string      `json:"recommendation"`
}

// SimulationResult is the full output of one run. ID and CreatedAt are left
// zero by the engine and assigned by whoever persists the result.
type SimulationResult struct {
	ID              int64             `json:"id,omitempty"`
	ScenarioConfig  ScenarioConfig    `json:"scenarioConfig"`
	Summary         SimulationSummary `json:"summary"`
	WeeklySnapshots []WeeklySnapshot  `json:"weeklySnapshots"`
	CreatedAt       *time.Time        `json:"createdAt,omitempty"`
}

// Objective names the quantity the optimizer minimizes.
type Objective string

// Optimization objectives
const (
	ObjectiveMaximizeGPA     Objective = "maximize_gpa"
	ObjectiveMinimizeBurnout Objective = "minimize_burnout"
	ObjectiveBalanced        Objective = "balanced"
)

// OptimizationConstraints bound the optimizer's search box.
type OptimizationConstraints struct {
	MaxWorkHoursPerWeek float64 `json:"maxWorkHoursPerWeek" yaml:"max_work_hours_per_week"`
	MinSleepHours       float64 `json:"minSleepHours" yaml:"min_sleep_hours"`
	// TargetMinGPA is accepted for API compatibility; the search ignores it.
	TargetMinGPA float64 `json:"targetMinGpa" yaml:"target_min_gpa"`
}

// DefaultConstraints returns the API defaults.
func DefaultConstraints() OptimizationConstraints {
	return OptimizationConstraints{
		MaxWorkHoursPerWeek: 20,
		MinSleepHours:       6,
		TargetMinGPA:        3.0,
	}
}

// OptimizationRequest asks for the best schedule for a student.
type OptimizationRequest struct {
	StudentID   int64                   `json:"studentId" yaml:"student_id"`
	NumWeeks    int                     `json:"numWeeks" yaml:"num_weeks"`
	Constraints OptimizationConstraints `json:"constraints" yaml:"constraints"`
	Objective   Objective               `json:"objective" yaml:"objective"`
}

// OptimizationResult is the optimum plus a full simulation run at it.
type OptimizationResult struct {
	Objective                   Objective          `json:"objective"`
	OptimalWorkHours            float64            `json:"optimalWorkHours"`
	OptimalSleepHours           float64            `json:"optimalSleepHours"`
	OptimalStudyHoursPerCourse  map[string]float64 `json:"optimalStudyHoursPerCourse"`
	OptimalStudyStrategy        StudyStrategy      `json:"optimalStudyStrategy"`
	PredictedGPA                float64            `json:"predictedGpa"`
	PredictedBurnoutProbability float64            `json:"predictedBurnoutProbability"`
	Generations                 int                `json:"generations"`
	Evaluations                 int                `json:"evaluations"`
	Converged                   bool               `json:"converged"`
	SimulationResult            *SimulationResult  `json:"simulationResult"`
}
