package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixtureCourse() CourseRef {
	return CourseRef{ID: 1, Name: "Algorithms", Credits: 3, DifficultyScore: 7.5, WeeklyWorkloadHours: 6}
}

func TestClassHoursAddsLabHour(t *testing.T) {
	courses := []CourseRef{
		{ID: 1, Credits: 3},
		{ID: 2, Credits: 4},
		{ID: 3, Credits: 6},
	}
	assert.Equal(t, 3.0+5.0+7.0, ClassHours(courses))
	assert.Zero(t, ClassHours(nil))
}

func TestAllocateTimeReferenceWeek(t *testing.T) {
	alloc := AllocateTime([]CourseRef{fixtureCourse()}, 10, 7, StrategySpaced)

	assert.Equal(t, 3.0, alloc.ClassHours)
	assert.Equal(t, 49.0, alloc.SleepHours)
	assert.Equal(t, 10.0, alloc.WorkHours)
	assert.Equal(t, DefaultRecoveryHours, alloc.RecoveryHours)
	assert.Equal(t, DefaultSocialHours, alloc.SocialHours)
	assert.Equal(t, PersonalHours, alloc.PersonalHours)
	assert.InDelta(t, 58.1, alloc.DeepStudyHours, 1e-9)
	assert.InDelta(t, 24.9, alloc.ShallowStudyHours, 1e-9)
	assert.InDelta(t, 83.0, alloc.StudyHours(), 1e-9)
	assert.InDelta(t, HoursPerWeek, alloc.TotalHours, 1e-9)
	assert.False(t, alloc.IsOverloaded)
}

func TestAllocateTimeStrategySplit(t *testing.T) {
	courses := []CourseRef{fixtureCourse()}
	tests := []struct {
		strategy StudyStrategy
		deep     float64
	}{
		{StrategySpaced, 0.7},
		{StrategyMixed, 0.5},
		{StrategyCramming, 0.3},
		{StudyStrategy("interleaved"), 0.5},
	}
	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			alloc := AllocateTime(courses, 10, 7, tt.strategy)
			assert.InDelta(t, 83*tt.deep, alloc.DeepStudyHours, 1e-9)
			assert.InDelta(t, 83.0, alloc.StudyHours(), 1e-9)
		})
	}
}

func TestAllocateTimeSqueezesReserves(t *testing.T) {
	// 84 sleep + 3 class + 60 work + 14 personal leaves 7 hours for reserves.
	alloc := AllocateTime([]CourseRef{fixtureCourse()}, 60, 12, StrategySpaced)

	assert.InDelta(t, 2.8, alloc.RecoveryHours, 1e-9)
	assert.InDelta(t, 4.2, alloc.SocialHours, 1e-9)
	assert.Zero(t, alloc.DeepStudyHours)
	assert.Zero(t, alloc.ShallowStudyHours)
	assert.InDelta(t, HoursPerWeek, alloc.TotalHours, 1e-9)
	assert.False(t, alloc.IsOverloaded)
}

func TestAllocateTimeFlagsOverload(t *testing.T) {
	courses := make([]CourseRef, 6)
	for i := range courses {
		courses[i] = CourseRef{ID: int64(i + 1), Credits: 6, DifficultyScore: 5, WeeklyWorkloadHours: 3}
	}
	alloc := AllocateTime(courses, 60, 12, StrategyMixed)

	assert.Zero(t, alloc.RecoveryHours)
	assert.Zero(t, alloc.SocialHours)
	assert.Zero(t, alloc.StudyHours())
	assert.Greater(t, alloc.TotalHours, HoursPerWeek)
	assert.True(t, alloc.IsOverloaded)
}

func TestAllocateTimeWithReserves(t *testing.T) {
	alloc := AllocateTimeWithReserves([]CourseRef{fixtureCourse()}, 10, 7, StrategyMixed, 10, 10)
	assert.Equal(t, 10.0, alloc.RecoveryHours)
	assert.Equal(t, 10.0, alloc.SocialHours)
	assert.InDelta(t, 72.0, alloc.StudyHours(), 1e-9)
}
