package simulation

const (
	// HoursPerWeek is the fixed weekly budget every allocation is carved from.
	HoursPerWeek = 168.0

	// PersonalHours covers meals, hygiene and transit.
	PersonalHours = 14.0

	// DefaultRecoveryHours and DefaultSocialHours are the soft reserves.
	DefaultRecoveryHours = 4.0
	DefaultSocialHours   = 5.0
)

// ClassHours returns weekly in-class hours: one per credit plus a lab or
// recitation hour for every course with four or more credits.
func ClassHours(courses []CourseRef) float64 {
	var total float64
	for _, c := range courses {
		total += float64(c.Credits)
		if c.Credits >= 4 {
			total++
		}
	}
	return total
}

// DeepStudyRatio is the deep share of study time for a strategy.
func DeepStudyRatio(strategy StudyStrategy) float64 {
	switch strategy {
	case StrategySpaced:
		return 0.7
	case StrategyCramming:
		return 0.3
	default:
		return 0.5
	}
}

// AllocateTime splits the week using the default soft reserves.
func AllocateTime(courses []CourseRef, workHours, nightlySleep float64, strategy StudyStrategy) TimeAllocation {
	return AllocateTimeWithReserves(courses, workHours, nightlySleep, strategy, DefaultRecoveryHours, DefaultSocialHours)
}

// AllocateTimeWithReserves fills sleep, class, work and personal time first,
// then the soft reserves, and gives whatever remains to study. When the hard
// commitments leave less than the reserves, the reserves are squeezed to a
// 40/60 split of what is left and study drops to zero. It never fails;
// impossible weeks are reported through IsOverloaded.
func AllocateTimeWithReserves(courses []CourseRef, workHours, nightlySleep float64, strategy StudyStrategy, recovery, social float64) TimeAllocation {
	sleep := nightlySleep * 7
	class := ClassHours(courses)
	committed := sleep + class + workHours + PersonalHours

	available := HoursPerWeek - committed - (recovery + social)
	if available < 0 {
		remaining := HoursPerWeek - committed
		if remaining < 0 {
			remaining = 0
		}
		recovery = remaining * 0.4
		social = remaining * 0.6
		available = 0
	}

	ratio := DeepStudyRatio(strategy)
	alloc := TimeAllocation{
		ClassHours:        class,
		WorkHours:         workHours,
		SleepHours:        sleep,
		DeepStudyHours:    available * ratio,
		ShallowStudyHours: available * (1 - ratio),
		RecoveryHours:     recovery,
		SocialHours:       social,
		PersonalHours:     PersonalHours,
	}
	alloc.TotalHours = alloc.ClassHours + alloc.WorkHours + alloc.SleepHours +
		alloc.DeepStudyHours + alloc.ShallowStudyHours +
		alloc.RecoveryHours + alloc.SocialHours + alloc.PersonalHours
	alloc.IsOverloaded = alloc.TotalHours > HoursPerWeek
	return alloc
}
