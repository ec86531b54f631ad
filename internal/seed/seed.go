// Package seed inserts demo data for local development.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appModels "github.com/yigit/academictwin/internal/app/models"
	appRepos "github.com/yigit/academictwin/internal/app/repositories"
	"github.com/yigit/academictwin/internal/db"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
)

// DemoEmail identifies the demo student; seeding is skipped when it exists.
const DemoEmail = "demo.student@academictwin.dev"

// DemoStudent returns the profile inserted by Demo.
func DemoStudent() *appModels.Student {
	return &appModels.Student{
		Name:             "Demo Student",
		Email:            DemoEmail,
		TargetGPA:        3.5,
		WeeklyWorkHours:  10,
		SleepTargetHours: 7,
	}
}

// DemoCourses returns a four-course semester of mixed difficulty.
func DemoCourses() []*appModels.Course {
	return []*appModels.Course{
		{Name: "Data Structures", Credits: 4, DifficultyScore: 7.5, WeeklyWorkloadHours: 6,
			AssessmentStructure: appModels.AssessmentStructure{"midterm": 0.3, "final": 0.4, "projects": 0.3}},
		{Name: "Linear Algebra", Credits: 3, DifficultyScore: 7, WeeklyWorkloadHours: 5,
			AssessmentStructure: appModels.AssessmentStructure{"midterm": 0.4, "final": 0.6}},
		{Name: "Technical Writing", Credits: 2, DifficultyScore: 3, WeeklyWorkloadHours: 2,
			AssessmentStructure: appModels.AssessmentStructure{"essays": 0.7, "participation": 0.3}},
		{Name: "Operating Systems", Credits: 4, DifficultyScore: 8.5, WeeklyWorkloadHours: 7,
			AssessmentStructure: appModels.AssessmentStructure{"labs": 0.4, "final": 0.6}},
	}
}

// Demo inserts the demo student and its courses. It reports false without
// error when the demo student already exists.
func Demo(ctx context.Context, students appRepos.IStudentRepository, courses appRepos.ICourseRepository) (bool, error) {
	student := DemoStudent()
	if err := students.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("create demo student: %w", err)
	}

	for _, course := range DemoCourses() {
		course.StudentID = student.ID
		if err := courses.Create(ctx, course); err != nil {
			return false, fmt.Errorf("create demo course %q: %w", course.Name, err)
		}
	}
	return true, nil
}

// CreateDemoData seeds the demo student in a single transaction.
func CreateDemoData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating demo data...")

	var created bool
	err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		created, err = Demo(ctx, appRepos.NewStudentRepository(tx), appRepos.NewCourseRepository(tx))
		return err
	})
	if err != nil {
		return err
	}

	if created {
		lgr.Info().Str("email", DemoEmail).Msg("Demo student created")
	} else {
		lgr.Info().Str("email", DemoEmail).Msg("Demo student already exists, skipping")
	}
	return nil
}
