package models

import (
	"time"

	"github.com/yigit/academictwin/internal/simulation"
)

// AssessmentStructure maps an assessment kind (exam, project, ...) to its
// share of the final grade. Stored as JSONB and not used by the simulation.
type AssessmentStructure map[string]float64

// Course is a row of the 'courses' table, owned by one student.
type Course struct {
	ID                  int64               `json:"id" db:"id" example:"1"`
	StudentID           int64               `json:"studentId" db:"student_id" example:"1"`
	Name                string              `json:"name" db:"name" example:"Linear Algebra"`
	Credits             int                 `json:"credits" db:"credits" example:"3"`
	DifficultyScore     float64             `json:"difficultyScore" db:"difficulty_score" example:"7.5"`
	WeeklyWorkloadHours float64             `json:"weeklyWorkloadHours" db:"weekly_workload_hours" example:"6"`
	AssessmentStructure AssessmentStructure `json:"assessmentStructure" db:"assessment_structure"`
	CreatedAt           time.Time           `json:"createdAt" db:"created_at"`
}

// Ref converts the row to the reference record the simulation consumes.
func (c *Course) Ref() simulation.CourseRef {
	return simulation.CourseRef{
		ID:                  c.ID,
		Name:                c.Name,
		Credits:             c.Credits,
		DifficultyScore:     c.DifficultyScore,
		WeeklyWorkloadHours: c.WeeklyWorkloadHours,
	}
}

// CourseRefs converts a slice of rows, preserving order.
func CourseRefs(courses []*Course) []simulation.CourseRef {
	refs := make([]simulation.CourseRef, len(courses))
	for i, c := range courses {
		refs[i] = c.Ref()
	}
	return refs
}
