package simulation

import "testing"

func BenchmarkEngineRun(b *testing.B) {
	engine := NewEngine(EngineOptions{})
	cfg := ScenarioConfig{NumWeeks: 16, WorkHoursPerWeek: 15, SleepTargetHours: 7, StudyStrategy: StrategySpaced}
	courses := mixedCourses()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Run(cfg, courses, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOptimize(b *testing.B) {
	opt := NewOptimizer(NewEngine(EngineOptions{}), OptimizerOptions{Search: quickSearch()})
	req := defaultRequest(ObjectiveBalanced)
	courses := mixedCourses()

	for i := 0; i < b.N; i++ {
		if _, err := opt.Optimize(nil, courses, req); err != nil {
			b.Fatal(err)
		}
	}
}
