package dto

import (
	"time"

	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/simulation"
)

// ScenarioRequest carries the tunable scenario fields. Missing fields take
// the defaults of simulation.DefaultScenarioConfig.
type ScenarioRequest struct {
	NumWeeks         *int     `json:"numWeeks" binding:"omitempty,min=4,max=20" example:"16"`
	WorkHoursPerWeek *float64 `json:"workHoursPerWeek" binding:"omitempty,gte=0,lte=60" example:"10"`
	SleepTargetHours *float64 `json:"sleepTargetHours" binding:"omitempty,gte=4,lte=12" example:"7"`
	StudyStrategy    string   `json:"studyStrategy" binding:"omitempty,strategy" example:"spaced" enums:"spaced,mixed,cramming"`
	IncludeCourseIDs []int64  `json:"includeCourseIds" binding:"omitempty,dive,gt=0"`
	ScenarioName     string   `json:"scenarioName" binding:"omitempty,max=255" example:"Fall with part-time job"`
}

// Scenario resolves the request against the defaults for studentID.
func (r ScenarioRequest) Scenario(studentID int64) simulation.ScenarioConfig {
	cfg := simulation.DefaultScenarioConfig()
	cfg.StudentID = studentID
	if r.NumWeeks != nil {
		cfg.NumWeeks = *r.NumWeeks
	}
	if r.WorkHoursPerWeek != nil {
		cfg.WorkHoursPerWeek = *r.WorkHoursPerWeek
	}
	if r.SleepTargetHours != nil {
		cfg.SleepTargetHours = *r.SleepTargetHours
	}
	if r.StudyStrategy != "" {
		cfg.StudyStrategy = simulation.StudyStrategy(r.StudyStrategy)
	}
	if len(r.IncludeCourseIDs) > 0 {
		cfg.IncludeCourseIDs = append([]int64{}, r.IncludeCourseIDs...)
	}
	cfg.ScenarioName = r.ScenarioName
	return cfg
}

// RunSimulationRequest runs and stores one scenario.
type RunSimulationRequest struct {
	StudentID int64 `json:"studentId" binding:"required,gt=0" example:"1"`
	ScenarioRequest
}

// BatchSimulationRequest runs several scenarios for one student without
// storing them.
type BatchSimulationRequest struct {
	StudentID int64             `json:"studentId" binding:"required,gt=0" example:"1"`
	Scenarios []ScenarioRequest `json:"scenarios" binding:"required,min=1,dive"`
}

// BatchSimulationResponse holds one result per requested scenario, in
// request order.
type BatchSimulationResponse struct {
	Results []*simulation.SimulationResult `json:"results"`
	// BestGPAIndex and LowestBurnoutIndex point into Results; ties keep the
	// earlier scenario.
	BestGPAIndex       int `json:"bestGpaIndex" example:"0"`
	LowestBurnoutIndex int `json:"lowestBurnoutIndex" example:"1"`
}

// NewBatchSimulationResponse ranks the results.
func NewBatchSimulationResponse(results []*simulation.SimulationResult) BatchSimulationResponse {
	resp := BatchSimulationResponse{Results: results}
	for i, r := range results {
		if r.Summary.PredictedGPAMean > results[resp.BestGPAIndex].Summary.PredictedGPAMean {
			resp.BestGPAIndex = i
		}
		if r.Summary.BurnoutProbability < results[resp.LowestBurnoutIndex].Summary.BurnoutProbability {
			resp.LowestBurnoutIndex = i
		}
	}
	return resp
}

// SimulationRunListItem is the summary row of a stored run.
type SimulationRunListItem struct {
	ID               int64                    `json:"id" example:"12"`
	StudentID        int64                    `json:"studentId" example:"1"`
	ScenarioName     string                   `json:"scenarioName,omitempty" example:"Baseline"`
	NumWeeks         int                      `json:"numWeeks" example:"16"`
	StudyStrategy    simulation.StudyStrategy `json:"studyStrategy" example:"spaced"`
	PredictedGPAMean float64                  `json:"predictedGpaMean" example:"3.42"`
	BurnoutRisk      simulation.BurnoutRisk   `json:"burnoutRisk" example:"LOW"`
	CreatedAt        time.Time                `json:"createdAt"`
}

// NewSimulationRunListItem summarizes a stored run.
func NewSimulationRunListItem(run *models.SimulationRun) SimulationRunListItem {
	item := SimulationRunListItem{
		ID:            run.ID,
		StudentID:     run.StudentID,
		NumWeeks:      run.ScenarioConfig.NumWeeks,
		StudyStrategy: run.ScenarioConfig.StudyStrategy,
		CreatedAt:     run.CreatedAt,
	}
	if run.ScenarioName != nil {
		item.ScenarioName = *run.ScenarioName
	}
	if run.Results != nil {
		item.PredictedGPAMean = run.Results.Summary.PredictedGPAMean
		item.BurnoutRisk = run.Results.Summary.BurnoutRisk
	}
	return item
}

// SimulationDelta is B minus A for the headline summary figures.
type SimulationDelta struct {
	PredictedGPAMean          float64 `json:"predictedGpaMean" example:"0.15"`
	BurnoutProbability        float64 `json:"burnoutProbability" example:"-0.2"`
	SleepDeficitHours         float64 `json:"sleepDeficitHours" example:"0"`
	RequiredStudyHoursPerWeek float64 `json:"requiredStudyHoursPerWeek" example:"0"`
	PeakOverloadWeeks         int     `json:"peakOverloadWeeks" example:"-2"`
	MeanCognitiveLoad         float64 `json:"meanCognitiveLoad" example:"-6.4"`
}

// SimulationComparison places two stored runs side by side.
type SimulationComparison struct {
	A     *simulation.SimulationResult `json:"a"`
	B     *simulation.SimulationResult `json:"b"`
	Delta SimulationDelta              `json:"delta"`
}

// NewSimulationComparison computes the deltas between a and b.
func NewSimulationComparison(a, b *simulation.SimulationResult) SimulationComparison {
	sa, sb := a.Summary, b.Summary
	return SimulationComparison{
		A: a,
		B: b,
		Delta: SimulationDelta{
			PredictedGPAMean:          roundTo(sb.PredictedGPAMean-sa.PredictedGPAMean, 2),
			BurnoutProbability:        roundTo(sb.BurnoutProbability-sa.BurnoutProbability, 3),
			SleepDeficitHours:         roundTo(sb.SleepDeficitHours-sa.SleepDeficitHours, 1),
			RequiredStudyHoursPerWeek: roundTo(sb.RequiredStudyHoursPerWeek-sa.RequiredStudyHoursPerWeek, 1),
			PeakOverloadWeeks:         len(sb.PeakOverloadWeeks) - len(sa.PeakOverloadWeeks),
			MeanCognitiveLoad:         roundTo(meanLoad(b)-meanLoad(a), 2),
		},
	}
}

func meanLoad(r *simulation.SimulationResult) float64 {
	if len(r.WeeklySnapshots) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.WeeklySnapshots {
		sum += s.CognitiveLoad
	}
	return sum / float64(len(r.WeeklySnapshots))
}

// OptimizeConstraintsRequest bounds the schedule search.
type OptimizeConstraintsRequest struct {
	MaxWorkHoursPerWeek *float64 `json:"maxWorkHoursPerWeek" binding:"omitempty,gte=0,lte=60" example:"20"`
	MinSleepHours       *float64 `json:"minSleepHours" binding:"omitempty,gte=4,lte=10" example:"6"`
	TargetMinGPA        *float64 `json:"targetMinGpa" binding:"omitempty,gte=0,lte=4" example:"3.0"`
}

// OptimizeRequest asks for the best schedule for a student.
type OptimizeRequest struct {
	StudentID   int64                       `json:"studentId" binding:"required,gt=0" example:"1"`
	NumWeeks    *int                        `json:"numWeeks" binding:"omitempty,min=4,max=20" example:"16"`
	Constraints *OptimizeConstraintsRequest `json:"constraints"`
	Objective   string                      `json:"objective" binding:"omitempty,objective" example:"balanced" enums:"maximize_gpa,minimize_burnout,balanced"`
}

// Optimization resolves the request against the defaults.
func (r OptimizeRequest) Optimization() simulation.OptimizationRequest {
	req := simulation.OptimizationRequest{
		StudentID:   r.StudentID,
		NumWeeks:    simulation.DefaultScenarioConfig().NumWeeks,
		Constraints: simulation.DefaultConstraints(),
		Objective:   simulation.ObjectiveBalanced,
	}
	if r.NumWeeks != nil {
		req.NumWeeks = *r.NumWeeks
	}
	if r.Objective != "" {
		req.Objective = simulation.Objective(r.Objective)
	}
	if c := r.Constraints; c != nil {
		if c.MaxWorkHoursPerWeek != nil {
			req.Constraints.MaxWorkHoursPerWeek = *c.MaxWorkHoursPerWeek
		}
		if c.MinSleepHours != nil {
			req.Constraints.MinSleepHours = *c.MinSleepHours
		}
		if c.TargetMinGPA != nil {
			req.Constraints.TargetMinGPA = *c.TargetMinGPA
		}
	}
	return req
}
