package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/dberrors"
	"github.com/yigit/academictwin/internal/pkg/logger"
)

var simulationRunColumns = []string{"id", "student_id", "scenario_name", "scenario_config", "results", "created_at"}

// ISimulationRunRepository defines the interface for stored simulation runs
type ISimulationRunRepository interface {
	Create(ctx context.Context, run *models.SimulationRun) error
	GetByID(ctx context.Context, id int64) (*models.SimulationRun, error)
	ListByStudent(ctx context.Context, studentID int64, offset, limit uint64) ([]*models.SimulationRun, int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SimulationRunRepository handles simulation_runs database operations
type SimulationRunRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewSimulationRunRepository creates a new SimulationRunRepository
func NewSimulationRunRepository(db DBTX) *SimulationRunRepository {
	return &SimulationRunRepository{db: db, sb: statementBuilder()}
}

// Create stores the run; the database assigns ID and CreatedAt.
func (r *SimulationRunRepository) Create(ctx context.Context, run *models.SimulationRun) error {
	configJSON, err := json.Marshal(run.ScenarioConfig)
	if err != nil {
		return fmt.Errorf("failed to encode scenario config: %w", err)
	}
	resultsJSON, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("failed to encode simulation results: %w", err)
	}

	sql, args, err := r.sb.Insert("simulation_runs").
		Columns("student_id", "scenario_name", "scenario_config", "results").
		Values(run.StudentID, run.ScenarioName, configJSON, resultsJSON).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create simulation run SQL")
		return fmt.Errorf("failed to build create simulation run query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&run.ID, &run.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", run.StudentID).Msg("Error executing create simulation run query")
		return fmt.Errorf("error creating simulation run: %w", err)
	}
	return nil
}

// GetByID retrieves a stored run by ID
func (r *SimulationRunRepository) GetByID(ctx context.Context, id int64) (*models.SimulationRun, error) {
	sql, args, err := r.sb.Select(simulationRunColumns...).
		From("simulation_runs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get simulation run SQL")
		return nil, fmt.Errorf("failed to build get simulation run query: %w", err)
	}

	run, err := scanSimulationRun(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSimulationNotFound
		}
		logger.Error().Err(err).Int64("runID", id).Msg("Error scanning simulation run row")
		return nil, fmt.Errorf("error getting simulation run by ID: %w", err)
	}
	return run, nil
}

// ListByStudent returns one page of the student's runs, newest first, and
// the total number of runs the student has.
func (r *SimulationRunRepository) ListByStudent(ctx context.Context, studentID int64, offset, limit uint64) ([]*models.SimulationRun, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("simulation_runs").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count simulation runs SQL")
		return nil, 0, fmt.Errorf("failed to build count simulation runs query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error counting simulation runs")
		return nil, 0, fmt.Errorf("error counting simulation runs: %w", err)
	}
	if total == 0 {
		return []*models.SimulationRun{}, 0, nil
	}

	sql, args, err := r.sb.Select(simulationRunColumns...).
		From("simulation_runs").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list simulation runs SQL")
		return nil, 0, fmt.Errorf("failed to build list simulation runs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list simulation runs query")
		return nil, 0, fmt.Errorf("error querying simulation runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.SimulationRun{}
	for rows.Next() {
		run, err := scanSimulationRun(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning simulation run row during list")
			return nil, 0, fmt.Errorf("error scanning simulation run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating simulation run rows")
		return nil, 0, fmt.Errorf("error iterating simulation run rows: %w", err)
	}
	return runs, total, nil
}

// Delete removes a stored run by ID
func (r *SimulationRunRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("simulation_runs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete simulation run SQL")
		return fmt.Errorf("failed to build delete simulation run query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("runID", id).Msg("Error executing delete simulation run query")
		return fmt.Errorf("error deleting simulation run: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSimulationNotFound
	}
	return nil
}

// DeleteOlderThan removes every run created before cutoff and returns how
// many were deleted.
func (r *SimulationRunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("simulation_runs").
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building prune simulation runs SQL")
		return 0, fmt.Errorf("failed to build prune simulation runs query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Time("cutoff", cutoff).Msg("Error executing prune simulation runs query")
		return 0, fmt.Errorf("error pruning simulation runs: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func scanSimulationRun(row pgx.Row) (*models.SimulationRun, error) {
	run := &models.SimulationRun{}
	var configJSON, resultsJSON []byte
	if err := row.Scan(&run.ID, &run.StudentID, &run.ScenarioName, &configJSON, &resultsJSON, &run.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(configJSON, &run.ScenarioConfig); err != nil {
		return nil, fmt.Errorf("decode scenario config: %w", err)
	}
	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &run.Results); err != nil {
			return nil, fmt.Errorf("decode simulation results: %w", err)
		}
	}
	return run, nil
}
