package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/simulation"
)

var createdAt = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func TestStudentRepository_Create(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{values: []any{int64(7), createdAt}}}}
	repo := NewStudentRepository(db)

	student := &models.Student{Name: "Ada", Email: "ada@example.edu", TargetGPA: 3.5, SleepTargetHours: 7}
	require.NoError(t, repo.Create(context.Background(), student))

	assert.Equal(t, int64(7), student.ID)
	assert.Equal(t, createdAt, student.CreatedAt)
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "INSERT INTO students")
	assert.Contains(t, db.calls[0].sql, "RETURNING id, created_at")
	assert.Equal(t, []any{"Ada", "ada@example.edu", 3.5, 0.0, 7.0}, db.calls[0].args)
}

func TestStudentRepository_CreateDuplicateEmail(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: studentEmailConstraint}
	db := &fakeDB{rows: []fakeRow{{err: dup}}}

	err := NewStudentRepository(db).Create(context.Background(), &models.Student{Email: "ada@example.edu"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestStudentRepository_GetByID(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{values: []any{int64(3), "Ada", "ada@example.edu", 3.5, 10.0, 7.0, createdAt}}}}

	student, err := NewStudentRepository(db).GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Ada", student.Name)
	assert.Equal(t, 10.0, student.WeeklyWorkHours)
	assert.Contains(t, db.calls[0].sql, "WHERE id = $1")
	assert.Equal(t, []any{int64(3)}, db.calls[0].args)
}

func TestStudentRepository_GetByIDMissing(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{err: pgx.ErrNoRows}}}

	_, err := NewStudentRepository(db).GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentRepository_UpdateMissing(t *testing.T) {
	db := &fakeDB{tags: []pgconn.CommandTag{pgconn.NewCommandTag("UPDATE 0")}}

	err := NewStudentRepository(db).Update(context.Background(), &models.Student{ID: 4, Name: "Ada"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCourseRepository_CreateEncodesAssessment(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{values: []any{int64(11), createdAt}}}}
	course := &models.Course{StudentID: 1, Name: "Physics", Credits: 4, DifficultyScore: 6, WeeklyWorkloadHours: 5}

	require.NoError(t, NewCourseRepository(db).Create(context.Background(), course))
	assert.Equal(t, int64(11), course.ID)

	args := db.calls[0].args
	require.Len(t, args, 6)
	assert.JSONEq(t, `{}`, string(args[5].([]byte)))
}

func TestCourseRepository_CreateUnknownStudent(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{err: &pgconn.PgError{Code: "23503"}}}}

	err := NewCourseRepository(db).Create(context.Background(), &models.Course{StudentID: 42})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCourseRepository_CreateDuplicateName(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: courseNameConstraint}
	db := &fakeDB{rows: []fakeRow{{err: dup}}}

	err := NewCourseRepository(db).Create(context.Background(), &models.Course{StudentID: 1, Name: "Seminar"})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	assert.ErrorContains(t, err, `"Seminar"`)
}

func TestCourseRepository_ListByStudentKeepsOrder(t *testing.T) {
	assessment := []byte(`{"exam":0.6,"project":0.4}`)
	db := &fakeDB{results: [][]fakeRow{{
		{values: []any{int64(1), int64(5), "Calculus", 4, 8.0, 7.0, assessment, createdAt}},
		{values: []any{int64(2), int64(5), "Writing", 2, 3.0, 2.0, []byte(`{}`), createdAt}},
	}}}

	courses, err := NewCourseRepository(db).ListByStudent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Calculus", courses[0].Name)
	assert.Equal(t, 0.6, courses[0].AssessmentStructure["exam"])
	assert.Equal(t, "Writing", courses[1].Name)
	assert.Contains(t, db.calls[0].sql, "ORDER BY id ASC")
}

func TestCourseRepository_DeleteMissing(t *testing.T) {
	db := &fakeDB{tags: []pgconn.CommandTag{pgconn.NewCommandTag("DELETE 0")}}

	err := NewCourseRepository(db).Delete(context.Background(), 8)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestSimulationRunRepository_RoundTripsJSON(t *testing.T) {
	name := "Baseline"
	cfg := simulation.DefaultScenarioConfig()
	cfg.StudentID = 5
	cfg.ScenarioName = name
	result := &simulation.SimulationResult{
		ScenarioConfig: cfg,
		Summary:        simulation.SimulationSummary{PredictedGPAMean: 3.1, BurnoutRisk: simulation.BurnoutLow},
	}

	db := &fakeDB{rows: []fakeRow{{values: []any{int64(20), createdAt}}}}
	repo := NewSimulationRunRepository(db)
	run := &models.SimulationRun{StudentID: 5, ScenarioName: &name, ScenarioConfig: cfg, Results: result}
	require.NoError(t, repo.Create(context.Background(), run))
	assert.Equal(t, int64(20), run.ID)

	args := db.calls[0].args
	require.Len(t, args, 4)
	configJSON, resultsJSON := args[2].([]byte), args[3].([]byte)

	db.rows = []fakeRow{{values: []any{int64(20), int64(5), &name, configJSON, resultsJSON, createdAt}}}
	stored, err := repo.GetByID(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, cfg.NumWeeks, stored.ScenarioConfig.NumWeeks)
	assert.Equal(t, simulation.StrategySpaced, stored.ScenarioConfig.StudyStrategy)
	require.NotNil(t, stored.Results)
	assert.Equal(t, 3.1, stored.Results.Summary.PredictedGPAMean)
	assert.Equal(t, "Baseline", *stored.ScenarioName)
}

func TestSimulationRunRepository_ListByStudent(t *testing.T) {
	configJSON, err := json.Marshal(simulation.DefaultScenarioConfig())
	require.NoError(t, err)

	db := &fakeDB{
		rows: []fakeRow{{values: []any{int64(12)}}},
		results: [][]fakeRow{{
			{values: []any{int64(9), int64(5), nil, configJSON, []byte(`{"summary":{"predictedGpaMean":2.9}}`), createdAt}},
		}},
	}

	runs, total, err := NewSimulationRunRepository(db).ListByStudent(context.Background(), 5, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].ScenarioName)
	assert.Equal(t, 2.9, runs[0].Results.Summary.PredictedGPAMean)

	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].sql, "COUNT(*)")
	assert.Contains(t, db.calls[1].sql, "ORDER BY created_at DESC, id DESC")
	assert.Contains(t, db.calls[1].sql, "LIMIT 10 OFFSET 10")
}

func TestSimulationRunRepository_ListEmptySkipsSelect(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{values: []any{int64(0)}}}}

	runs, total, err := NewSimulationRunRepository(db).ListByStudent(context.Background(), 5, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, runs)
	assert.Len(t, db.calls, 1)
}

func TestSimulationRunRepository_DeleteOlderThan(t *testing.T) {
	db := &fakeDB{tags: []pgconn.CommandTag{pgconn.NewCommandTag("DELETE 3")}}
	cutoff := createdAt.Add(-30 * 24 * time.Hour)

	n, err := NewSimulationRunRepository(db).DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Contains(t, db.calls[0].sql, "created_at < $1")
	assert.Equal(t, []any{cutoff}, db.calls[0].args)
}

func TestSimulationRunRepository_DeleteMissing(t *testing.T) {
	db := &fakeDB{tags: []pgconn.CommandTag{pgconn.NewCommandTag("DELETE 0")}}

	err := NewSimulationRunRepository(db).Delete(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrSimulationNotFound)
}
