package dto

import (
	"time"

	"github.com/yigit/academictwin/internal/app/models"
)

// CreateCourseRequest enrolls a student in a course.
type CreateCourseRequest struct {
	Name                string             `json:"name" binding:"required,max=255" example:"Linear Algebra"`
	Credits             int                `json:"credits" binding:"required,min=1,max=6" example:"3"`
	DifficultyScore     *float64           `json:"difficultyScore" binding:"omitempty,gte=1,lte=10" example:"7.5"`
	WeeklyWorkloadHours *float64           `json:"weeklyWorkloadHours" binding:"omitempty,gte=0.5,lte=20" example:"6"`
	AssessmentStructure map[string]float64 `json:"assessmentStructure,omitempty"`
}

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID                  int64              `json:"id" example:"1"`
	StudentID           int64              `json:"studentId" example:"1"`
	Name                string             `json:"name" example:"Linear Algebra"`
	Credits             int                `json:"credits" example:"3"`
	DifficultyScore     float64            `json:"difficultyScore" example:"7.5"`
	WeeklyWorkloadHours float64            `json:"weeklyWorkloadHours" example:"6"`
	AssessmentStructure map[string]float64 `json:"assessmentStructure"`
	CreatedAt           time.Time          `json:"createdAt"`
}

// NewCourseResponse maps a model to its response.
func NewCourseResponse(c *models.Course) CourseResponse {
	assessment := map[string]float64(c.AssessmentStructure)
	if assessment == nil {
		assessment = map[string]float64{}
	}
	return CourseResponse{
		ID:                  c.ID,
		StudentID:           c.StudentID,
		Name:                c.Name,
		Credits:             c.Credits,
		DifficultyScore:     c.DifficultyScore,
		WeeklyWorkloadHours: c.WeeklyWorkloadHours,
		AssessmentStructure: assessment,
		CreatedAt:           c.CreatedAt,
	}
}

// NewCourseResponses maps a list of models.
func NewCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = NewCourseResponse(c)
	}
	return out
}
