package models

import (
	"time"

	"github.com/yigit/academictwin/internal/simulation"
)

// Student is a row of the 'students' table. The target fields are advisory;
// simulations take their parameters from the scenario.
type Student struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	Name             string    `json:"name" db:"name" example:"Ada Lovelace"`
	Email            string    `json:"email" db:"email" example:"ada@example.edu"`
	TargetGPA        float64   `json:"targetGpa" db:"target_gpa" example:"3.5"`
	WeeklyWorkHours  float64   `json:"weeklyWorkHours" db:"weekly_work_hours" example:"10"`
	SleepTargetHours float64   `json:"sleepTargetHours" db:"sleep_target_hours" example:"7"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// Profile converts the row to the read-only view the simulation consumes.
func (s *Student) Profile() *simulation.StudentProfile {
	return &simulation.StudentProfile{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		TargetGPA:        s.TargetGPA,
		WeeklyWorkHours:  s.WeeklyWorkHours,
		SleepTargetHours: s.SleepTargetHours,
	}
}
