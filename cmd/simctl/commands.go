package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/yigit/academictwin/internal/bootstrap"
	"github.com/yigit/academictwin/internal/pkg/auth"
	"github.com/yigit/academictwin/internal/pkg/helpers"
	"github.com/yigit/academictwin/internal/pkg/validation"
	"github.com/yigit/academictwin/internal/simulation"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		file  string
		trend bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the scenario in a YAML file and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadScenarioFile(file)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			engine := bootstrap.NewEngine(cfg, opts.logger())
			result, err := engine.Run(f.Scenario, f.Courses, &f.Student)
			if err != nil {
				return err
			}

			if !trend {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			loads := make([]float64, len(result.WeeklySnapshots))
			for i, s := range result.WeeklySnapshots {
				loads[i] = s.CognitiveLoad
			}
			return writeJSON(cmd.OutOrStdout(), struct {
				*simulation.SimulationResult
				AccumulatedLoad []float64 `json:"accumulatedLoad"`
			}{result, simulation.AccumulateLoad(loads, simulation.DefaultLoadDecay)})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Scenario YAML file")
	cmd.Flags().BoolVar(&trend, "trend", false, "Also print the accumulated cognitive load")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newOptimizeCmd(opts *rootOptions) *cobra.Command {
	var (
		file      string
		objective string
		maxWork   float64
		minSleep  float64
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search for the best work, sleep and strategy for the courses in a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadScenarioFile(file)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			req := simulation.OptimizationRequest{
				StudentID: f.Student.ID,
				NumWeeks:  f.Scenario.NumWeeks,
				Constraints: simulation.OptimizationConstraints{
					MaxWorkHoursPerWeek: maxWork,
					MinSleepHours:       minSleep,
					TargetMinGPA:        simulation.DefaultConstraints().TargetMinGPA,
				},
				Objective: simulation.Objective(objective),
			}
			if err := validation.ValidateOptimization(req); err != nil {
				return err
			}

			lgr := opts.logger()
			optimizer := bootstrap.NewOptimizer(cfg, bootstrap.NewEngine(cfg, lgr), lgr)
			result, err := optimizer.Optimize(&f.Student, f.Courses, req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	defaults := simulation.DefaultConstraints()
	cmd.Flags().StringVarP(&file, "file", "f", "", "Scenario YAML file")
	cmd.Flags().StringVar(&objective, "objective", string(simulation.ObjectiveBalanced), "maximize_gpa, minimize_burnout or balanced")
	cmd.Flags().Float64Var(&maxWork, "max-work", defaults.MaxWorkHoursPerWeek, "Upper bound on weekly work hours")
	cmd.Flags().Float64Var(&minSleep, "min-sleep", defaults.MinSleepHours, "Lower bound on nightly sleep hours")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCurveCmd() *cobra.Command {
	var (
		weeks    int
		hours    float64
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Print the retention curve for constant weekly study",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.NumWeeksRange.Check(float64(weeks)); err != nil {
				return err
			}
			if !validation.IsStrategy(strategy) {
				return fmt.Errorf("unknown strategy %q", strategy)
			}
			return writeJSON(cmd.OutOrStdout(), simulation.SemesterRetentionCurve(weeks, hours, simulation.StudyStrategy(strategy)))
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 16, "Number of weeks")
	cmd.Flags().Float64Var(&hours, "hours", 5, "Study hours per week")
	cmd.Flags().StringVar(&strategy, "strategy", string(simulation.StrategySpaced), "spaced, mixed or cramming")
	return cmd
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var studentID int64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a student using the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if studentID <= 0 {
				return fmt.Errorf("--student must be a positive id")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return fmt.Errorf("jwt.secret is not configured")
			}

			jwtService := auth.NewJWTService(auth.JWTConfig{
				SecretKey:      cfg.JWT.Secret,
				AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
				TokenIssuer:    cfg.JWT.Issuer,
			})
			token, expiresAt, err := jwtService.GenerateToken(studentID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"token":     token,
				"expiresAt": expiresAt,
			})
		},
	}
	cmd.Flags().Int64Var(&studentID, "student", 0, "Student id to embed in the token")
	_ = cmd.MarkFlagRequired("student")
	return cmd
}
