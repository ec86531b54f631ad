package dto

import (
	"time"

	"github.com/yigit/academictwin/internal/app/models"
)

// CreateStudentRequest registers a student profile.
type CreateStudentRequest struct {
	Name             string   `json:"name" binding:"required,max=255" example:"Ada Lovelace"`
	Email            string   `json:"email" binding:"required,email" example:"ada@example.edu"`
	TargetGPA        *float64 `json:"targetGpa" binding:"omitempty,gte=0,lte=4" example:"3.5"`
	WeeklyWorkHours  *float64 `json:"weeklyWorkHours" binding:"omitempty,gte=0,lte=60" example:"10"`
	SleepTargetHours *float64 `json:"sleepTargetHours" binding:"omitempty,gte=4,lte=12" example:"7"`
}

// UpdateStudentRequest changes only the fields that are present.
type UpdateStudentRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Email            *string  `json:"email" binding:"omitempty,email"`
	TargetGPA        *float64 `json:"targetGpa" binding:"omitempty,gte=0,lte=4"`
	WeeklyWorkHours  *float64 `json:"weeklyWorkHours" binding:"omitempty,gte=0,lte=60"`
	SleepTargetHours *float64 `json:"sleepTargetHours" binding:"omitempty,gte=4,lte=12"`
}

// StudentResponse is the public view of a student.
type StudentResponse struct {
	ID               int64     `json:"id" example:"1"`
	Name             string    `json:"name" example:"Ada Lovelace"`
	Email            string    `json:"email" example:"ada@example.edu"`
	TargetGPA        float64   `json:"targetGpa" example:"3.5"`
	WeeklyWorkHours  float64   `json:"weeklyWorkHours" example:"10"`
	SleepTargetHours float64   `json:"sleepTargetHours" example:"7"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewStudentResponse maps a model to its response.
func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		TargetGPA:        s.TargetGPA,
		WeeklyWorkHours:  s.WeeklyWorkHours,
		SleepTargetHours: s.SleepTargetHours,
		CreatedAt:        s.CreatedAt,
	}
}
