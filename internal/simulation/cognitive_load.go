package simulation

const (
	// MaxLoad is the upper bound of every cognitive load score.
	MaxLoad = 100.0

	// OverloadThreshold marks a week as a peak overload week.
	OverloadThreshold = 70.0

	// DefaultLoadDecay is the share of carried load that dissipates per week.
	DefaultLoadDecay = 0.15

	// hardCourseDifficulty is the difficulty above which courses compete.
	hardCourseDifficulty = 7.0

	// loadNormalizer is difficulty 10 at three study hours, per course.
	loadNormalizer = 30.0

	// fullSleepHours is seven nights of seven hours.
	fullSleepHours = 49.0
)

// Distribution selects how weekly study hours are split across courses.
type Distribution string

// Study distributions. Anything unrecognized falls back to proportional.
const (
	DistributeProportional Distribution = "proportional"
	DistributeEqual        Distribution = "equal"
	DistributeWorkload     Distribution = "workload"
)

// ComputeWeeklyLoad scores one week's strain in [0, 100].
//
// studyHours is keyed by course ID; missing courses count as zero hours.
// sleepHours is the weekly total.
func ComputeWeeklyLoad(courses []CourseRef, studyHours map[int64]float64, priorFatigue, sleepHours float64) float64 {
	if len(courses) == 0 {
		return 0
	}

	var weighted float64
	hard := 0
	for _, c := range courses {
		weighted += c.DifficultyScore * studyHours[c.ID]
		if c.DifficultyScore > hardCourseDifficulty {
			hard++
		}
	}
	raw := weighted / (float64(len(courses)) * loadNormalizer) * MaxLoad

	var sequencing float64
	if hard > 1 {
		sequencing = float64(hard-1) * 5
	}
	multiplier := 1 + priorFatigue*0.4

	var sleepPenalty float64
	if sleepHours < fullSleepHours {
		sleepPenalty = (fullSleepHours - sleepHours) * 2
	}

	return clamp(raw*multiplier+sequencing+sleepPenalty, 0, MaxLoad)
}

// AccumulateLoad bleeds each week's load into the following weeks with
// exponential decay. The carry is clamped to [0, 100] after every step.
func AccumulateLoad(weeklyLoads []float64, decay float64) []float64 {
	out := make([]float64, len(weeklyLoads))
	var carry float64
	for i, load := range weeklyLoads {
		carry = clamp(load+(1-decay)*carry, 0, MaxLoad)
		out[i] = carry
	}
	return out
}

// DistributeStudyHours splits total across courses, keyed by course ID.
// The allocations sum to total.
func DistributeStudyHours(courses []CourseRef, total float64, mode Distribution) map[int64]float64 {
	out := make(map[int64]float64, len(courses))
	if len(courses) == 0 {
		return out
	}

	switch mode {
	case DistributeEqual:
		each := total / float64(len(courses))
		for _, c := range courses {
			out[c.ID] = each
		}
		return out
	case DistributeWorkload:
		return distributeBy(courses, total, func(c CourseRef) float64 { return c.WeeklyWorkloadHours })
	default:
		return distributeBy(courses, total, func(c CourseRef) float64 { return c.DifficultyScore })
	}
}

func distributeBy(courses []CourseRef, total float64, weight func(CourseRef) float64) map[int64]float64 {
	var sum float64
	for _, c := range courses {
		sum += weight(c)
	}
	if sum == 0 {
		sum = 1
	}

	out := make(map[int64]float64, len(courses))
	for _, c := range courses {
		out[c.ID] = weight(c) / sum * total
	}
	return out
}
