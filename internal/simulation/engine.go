package simulation

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// EngineOptions configures an Engine. The zero value is usable.
type EngineOptions struct {
	// CourseWorkers bounds the goroutines used for per-course work within a
	// week. Values below 2 keep the week on the calling goroutine.
	CourseWorkers int

	// Distribution controls how study time is split across courses.
	// Empty means proportional to difficulty.
	Distribution Distribution

	Logger zerolog.Logger
}

// Engine runs semester simulations. It holds only static configuration and
// is safe for concurrent use.
type Engine struct {
	workers int
	mode    Distribution
	log     zerolog.Logger
}

// NewEngine creates an Engine.
func NewEngine(opts EngineOptions) *Engine {
	mode := opts.Distribution
	if mode == "" {
		mode = DistributeProportional
	}
	return &Engine{
		workers: opts.CourseWorkers,
		mode:    mode,
		log:     opts.Logger,
	}
}

// simState is owned by exactly one run.
type simState struct {
	fatigue   float64
	retention []float64 // indexed like the filtered course slice

	loads    []float64
	sleeps   []float64
	recovery []float64
	gpas     []float64
	grades   []map[string]float64
}

func newSimState(courses, weeks int) *simState {
	return &simState{
		retention: make([]float64, courses),
		loads:     make([]float64, 0, weeks),
		sleeps:    make([]float64, 0, weeks),
		recovery:  make([]float64, 0, weeks),
		gpas:      make([]float64, 0, weeks),
		grades:    make([]map[string]float64, 0, weeks),
	}
}

// Run simulates cfg.NumWeeks weeks for the selected courses. It returns
// ErrNoCoursesSelected when the include filter leaves nothing to simulate.
// Inputs are not modified and the returned result shares no memory with them.
func (e *Engine) Run(cfg ScenarioConfig, courses []CourseRef, student *StudentProfile) (*SimulationResult, error) {
	_ = student
	selected := filterCourses(courses, cfg.IncludeCourseIDs)
	if len(selected) == 0 {
		return nil, ErrNoCoursesSelected
	}

	credits := make(map[string]int, len(selected))
	for _, c := range selected {
		credits[c.Name] = c.Credits
	}

	st := newSimState(len(selected), cfg.NumWeeks)
	snapshots := make([]WeeklySnapshot, 0, cfg.NumWeeks)

	for week := 1; week <= cfg.NumWeeks; week++ {
		snap := e.tick(week, cfg, selected, credits, st)
		snapshots = append(snapshots, snap)
	}

	res := &SimulationResult{
		ScenarioConfig:  copyConfig(cfg),
		Summary:         summarize(selected, credits, st),
		WeeklySnapshots: snapshots,
	}

	e.log.Debug().
		Int("weeks", cfg.NumWeeks).
		Int("courses", len(selected)).
		Str("strategy", string(cfg.StudyStrategy)).
		Float64("gpa", res.Summary.PredictedGPAMean).
		Str("burnout", string(res.Summary.BurnoutRisk)).
		Msg("Simulation completed")

	return res, nil
}

// tick advances st by one week and returns the display snapshot.
func (e *Engine) tick(week int, cfg ScenarioConfig, courses []CourseRef, credits map[string]int, st *simState) WeeklySnapshot {
	alloc := AllocateTime(courses, cfg.WorkHoursPerWeek, cfg.SleepTargetHours, cfg.StudyStrategy)
	study := DistributeStudyHours(courses, alloc.StudyHours(), e.mode)
	load := ComputeWeeklyLoad(courses, study, st.fatigue, alloc.SleepHours)

	retention := make([]float64, len(courses))
	grades := make([]float64, len(courses))
	e.eachCourse(len(courses), func(i int) {
		c := courses[i]
		retention[i] = UpdateRetention(st.retention[i], study[c.ID], cfg.StudyStrategy, DefaultReviewIntervalDays)
		grades[i] = PredictGrade(c, study[c.ID], load, retention[i])
	})
	st.retention = retention

	gradeMap := make(map[string]float64, len(courses))
	for i, c := range courses {
		gradeMap[c.Name] = grades[i]
	}
	gpa := ComputeGPA(gradeMap, credits)

	st.loads = append(st.loads, load)
	st.sleeps = append(st.sleeps, alloc.SleepHours)
	st.recovery = append(st.recovery, alloc.RecoveryHours)
	burnout := ComputeBurnoutProbability(st.loads, st.sleeps, st.recovery)

	st.fatigue = ComputeRecovery(st.fatigue, alloc.SleepHours, alloc.RecoveryHours)
	st.gpas = append(st.gpas, gpa)
	st.grades = append(st.grades, gradeMap)

	displayGrades := make(map[string]float64, len(courses))
	displayRetention := make(map[string]float64, len(courses))
	for i, c := range courses {
		displayGrades[c.Name] = round(grades[i], 1)
		displayRetention[c.Name] = round(retention[i], 3)
	}

	return WeeklySnapshot{
		Week:               week,
		CognitiveLoad:      round(load, 2),
		PredictedGPA:       round(gpa, 2),
		BurnoutProbability: round(burnout, 3),
		FatigueLevel:       round(st.fatigue, 3),
		RetentionScore:     round(mean(retention), 3),
		TimeAllocation:     alloc,
		CourseGrades:       displayGrades,
		CourseRetentions:   displayRetention,
	}
}

// eachCourse calls fn for every index in [0, n). Callers write results by
// index, so the output does not depend on scheduling.
func (e *Engine) eachCourse(n int, fn func(i int)) {
	if e.workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func summarize(courses []CourseRef, credits map[string]int, st *simState) SimulationSummary {
	final := ComputeSemesterGPA(st.grades, credits)
	spread := populationStdDev(st.gpas)

	burnout := ComputeBurnoutProbability(st.loads, st.sleeps, st.recovery)
	label := BurnoutRiskLabel(burnout)

	peaks := make([]int, 0)
	for i, l := range st.loads {
		if l > OverloadThreshold {
			peaks = append(peaks, i+1)
		}
	}

	deficit := max(0, fullSleepHours-mean(st.sleeps))

	var required float64
	for _, c := range courses {
		required += StudyDemand(c)
	}

	return SimulationSummary{
		PredictedGPAMin:           round(max(0, final-spread), 2),
		PredictedGPAMax:           round(min(4, final+spread), 2),
		PredictedGPAMean:          round(final, 2),
		BurnoutRisk:               label,
		BurnoutProbability:        round(burnout, 3),
		PeakOverloadWeeks:         peaks,
		RequiredStudyHoursPerWeek: round(required, 1),
		SleepDeficitHours:         round(deficit, 1),
		Recommendation:            Recommend(label, peaks, mean(st.loads), deficit),
	}
}

// Recommend assembles the advice sentence from fixed rules. At most three
// peak weeks are named.
func Recommend(risk BurnoutRisk, peakWeeks []int, meanLoad, sleepDeficit float64) string {
	var parts []string

	switch risk {
	case BurnoutHigh:
		parts = append(parts, "Burnout risk is high; consider dropping one course or reducing work hours.")
	case BurnoutMedium:
		if len(peakWeeks) > 0 {
			shown := peakWeeks[:min(3, len(peakWeeks))]
			weeks := make([]string, len(shown))
			for i, w := range shown {
				weeks[i] = fmt.Sprint(w)
			}
			parts = append(parts, "Moderate burnout risk detected; watch weeks "+strings.Join(weeks, ", ")+".")
		} else {
			parts = append(parts, "Moderate burnout risk detected; keep an eye on sustained workload.")
		}
	}

	if sleepDeficit > 7 {
		parts = append(parts, fmt.Sprintf("Sleep deficit of %.1fh/week; prioritize sleep to protect cognitive performance.", sleepDeficit))
	}

	switch {
	case meanLoad > 75:
		parts = append(parts, "Cognitive load is consistently high; switch to spaced study and increase recovery time.")
	case meanLoad < 40:
		parts = append(parts, "Schedule appears sustainable; consider adding a course or research commitment.")
	}

	if len(parts) == 0 {
		return "Schedule is well-balanced. Maintain current workload and study strategy."
	}
	return strings.Join(parts, " ")
}

// filterCourses keeps the courses whose ID is in include, in input order.
// An empty include keeps everything.
func filterCourses(courses []CourseRef, include []int64) []CourseRef {
	if len(include) == 0 {
		return append([]CourseRef(nil), courses...)
	}
	keep := make(map[int64]struct{}, len(include))
	for _, id := range include {
		keep[id] = struct{}{}
	}
	out := make([]CourseRef, 0, len(courses))
	for _, c := range courses {
		if _, ok := keep[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

func copyConfig(cfg ScenarioConfig) ScenarioConfig {
	out := cfg
	out.IncludeCourseIDs = append([]int64{}, cfg.IncludeCourseIDs...)
	return out
}
