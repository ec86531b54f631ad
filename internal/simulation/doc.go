// Package simulation models one student's semester as a week-by-week
// dynamical system and searches schedule parameters for a chosen objective.
//
// The package is split into five leaf models and two drivers:
//
//   - [AllocateTime]: splits the 168-hour week into competing buckets
//   - [ComputeWeeklyLoad], [DistributeStudyHours], [AccumulateLoad]: cognitive load
//   - [UpdateRetention], [SemesterRetentionCurve]: forgetting curve per course
//   - [PredictGrade], [ComputeGPA], [ComputeSemesterGPA]: grades and GPA
//   - [ComputeRecovery], [ComputeBurnoutProbability]: fatigue and burnout
//   - [Engine]: runs the weekly pipeline and builds a [SimulationResult]
//   - [Optimizer]: differential-evolution search over work, sleep and strategy
//
// # Example
//
//	engine := simulation.NewEngine(simulation.EngineOptions{})
//	res, err := engine.Run(cfg, courses, &student)
//
//	opt := simulation.NewOptimizer(engine, simulation.OptimizerOptions{})
//	best, err := opt.Optimize(&student, courses, req)
//
// # Thread Safety
//
// Every leaf model is a pure function. An [Engine] keeps no per-run state,
// so a single instance may serve concurrent runs.
package simulation
