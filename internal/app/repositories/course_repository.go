package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/dberrors"
	"github.com/yigit/academictwin/internal/pkg/logger"
)

const courseNameConstraint = "courses_student_name_key"

var courseColumns = []string{
	"id", "student_id", "name", "credits", "difficulty_score",
	"weekly_workload_hours", "assessment_structure", "created_at",
}

// ICourseRepository defines the interface for course database operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db, sb: statementBuilder()}
}

// Create inserts the course and fills in its ID and CreatedAt. A missing
// owner is reported as apperrors.ErrStudentNotFound, a name the student is
// already enrolled in as apperrors.ErrResourceAlreadyExists.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	assessment := course.AssessmentStructure
	if assessment == nil {
		assessment = models.AssessmentStructure{}
	}
	assessmentJSON, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to encode assessment structure: %w", err)
	}

	sql, args, err := r.sb.Insert("courses").
		Columns("student_id", "name", "credits", "difficulty_score", "weekly_workload_hours", "assessment_structure").
		Values(course.StudentID, course.Name, course.Credits, course.DifficultyScore, course.WeeklyWorkloadHours, assessmentJSON).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, courseNameConstraint) {
			return fmt.Errorf("%w: course %q is already enrolled", apperrors.ErrResourceAlreadyExists, course.Name)
		}
		logger.Error().Err(err).Int64("studentID", course.StudentID).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return course, nil
}

// ListByStudent returns the student's courses in enrollment order. The
// order is what keeps simulation results reproducible.
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during list")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Delete removes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	var assessment []byte
	if err := row.Scan(
		&course.ID, &course.StudentID, &course.Name, &course.Credits, &course.DifficultyScore,
		&course.WeeklyWorkloadHours, &assessment, &course.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(assessment) > 0 {
		if err := json.Unmarshal(assessment, &course.AssessmentStructure); err != nil {
			return nil, fmt.Errorf("decode assessment structure: %w", err)
		}
	}
	return course, nil
}
