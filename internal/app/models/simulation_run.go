package models

import (
	"time"

	"github.com/yigit/academictwin/internal/simulation"
)

// SimulationRun is a row of the 'simulation_runs' table. The scenario and
// the full result are stored as JSONB.
type SimulationRun struct {
	ID             int64                        `json:"id" db:"id"`
	StudentID      int64                        `json:"studentId" db:"student_id"`
	ScenarioName   *string                      `json:"scenarioName,omitempty" db:"scenario_name"`
	ScenarioConfig simulation.ScenarioConfig    `json:"scenarioConfig" db:"scenario_config"`
	Results        *simulation.SimulationResult `json:"results" db:"results"`
	CreatedAt      time.Time                    `json:"createdAt" db:"created_at"`
}

// Result returns the stored result stamped with the run's id and creation
// time.
func (r *SimulationRun) Result() *simulation.SimulationResult {
	if r.Results == nil {
		return nil
	}
	res := *r.Results
	res.ID = r.ID
	created := r.CreatedAt
	res.CreatedAt = &created
	return &res
}
