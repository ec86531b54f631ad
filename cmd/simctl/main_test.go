package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/auth"
	"github.com/yigit/academictwin/internal/simulation"
)

const scenarioYAML = `
student:
  id: 3
  name: Ada
courses:
  - name: Algorithms
    credits: 4
    difficulty_score: 8
    weekly_workload_hours: 6
  - name: Writing
    credits: 2
    difficulty_score: 3
scenario:
  num_weeks: 8
  work_hours_per_week: 10
  study_strategy: mixed
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadScenarioFile(t *testing.T) {
	f, err := loadScenarioFile(writeFile(t, "s.yaml", scenarioYAML))
	require.NoError(t, err)

	assert.Equal(t, int64(3), f.Scenario.StudentID)
	assert.Equal(t, 8, f.Scenario.NumWeeks)
	assert.Equal(t, 7.0, f.Scenario.SleepTargetHours)
	assert.Equal(t, simulation.StrategyMixed, f.Scenario.StudyStrategy)
	require.Len(t, f.Courses, 2)
	assert.Equal(t, int64(1), f.Courses[0].ID)
	assert.Equal(t, int64(2), f.Courses[1].ID)
	assert.Equal(t, 3.0, f.Courses[1].WeeklyWorkloadHours)
}

func TestLoadScenarioFile_NumbersAroundExplicitIDs(t *testing.T) {
	f, err := loadScenarioFile(writeFile(t, "s.yaml", `
courses:
  - name: Algorithms
  - name: Writing
  - name: Physics
    id: 2
`))
	require.NoError(t, err)

	ids := []int64{f.Courses[0].ID, f.Courses[1].ID, f.Courses[2].ID}
	assert.Equal(t, []int64{1, 3, 2}, ids)

	hours := simulation.DistributeStudyHours(f.Courses, 12, simulation.DistributeEqual)
	assert.Len(t, hours, 3)
}

func TestLoadScenarioFile_RejectsDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		courses string
		want    string
	}{
		{"same name", "  - name: Seminar\n  - name: Seminar\n", `name "Seminar" already used by course 1`},
		{"same name after trim", "  - name: Seminar\n  - name: ' Seminar '\n", `name "Seminar" already used by course 1`},
		{"same id", "  - name: A\n    id: 4\n  - name: B\n    id: 4\n", "id 4 already used by course 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScenarioFile(writeFile(t, "s.yaml", "courses:\n"+tt.courses))
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadScenarioFile_Invalid(t *testing.T) {
	_, err := loadScenarioFile(writeFile(t, "s.yaml", "scenario:\n  num_weeks: 40\n"))
	assert.ErrorContains(t, err, "numWeeks")

	_, err = loadScenarioFile(writeFile(t, "s.yaml", "courses:\n  - name: X\n    credits: 9\n"))
	assert.Error(t, err)

	_, err = loadScenarioFile(writeFile(t, "s.yaml", "courses: [unterminated"))
	assert.Error(t, err)

	_, err = loadScenarioFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "-f", writeFile(t, "s.yaml", scenarioYAML), "--trend")
	require.NoError(t, err)

	var got struct {
		simulation.SimulationResult
		AccumulatedLoad []float64 `json:"accumulatedLoad"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.WeeklySnapshots, 8)
	assert.Len(t, got.AccumulatedLoad, 8)
	assert.Equal(t, simulation.StrategyMixed, got.ScenarioConfig.StudyStrategy)
}

func TestRunCommand_RequiresFile(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
}

func TestCurveCommand(t *testing.T) {
	out, err := execute(t, "curve", "--weeks", "6", "--hours", "4", "--strategy", "cramming")
	require.NoError(t, err)

	var curve []float64
	require.NoError(t, json.Unmarshal([]byte(out), &curve))
	require.Len(t, curve, 6)
	for i := 1; i < len(curve); i++ {
		assert.GreaterOrEqual(t, curve[i], curve[i-1])
	}

	_, err = execute(t, "curve", "--strategy", "osmosis")
	assert.Error(t, err)
}

func TestOptimizeCommand_RejectsUnknownObjective(t *testing.T) {
	_, err := execute(t, "optimize", "-f", writeFile(t, "s.yaml", scenarioYAML), "--objective", "maximize_fun")
	assert.ErrorContains(t, err, "objective")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := execute(t, "token", "--student", "4")
	assert.ErrorContains(t, err, "secret")

	t.Setenv("JWT_SECRET", "cli-secret")
	out, err := execute(t, "token", "--student", "4")
	require.NoError(t, err)

	var got struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	claims, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "cli-secret", AccessTokenExp: time.Hour, TokenIssuer: "academictwin"}).
		ValidateToken(got.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.StudentID)
}
