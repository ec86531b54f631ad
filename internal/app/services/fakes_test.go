package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yigit/academictwin/internal/app/models"
	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/simulation"
)

var fixedNow = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)

type memStudents struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Student
}

func newMemStudents(students ...*models.Student) *memStudents {
	m := &memStudents{rows: map[int64]*models.Student{}}
	for _, s := range students {
		_ = m.Create(context.Background(), s)
	}
	return m
}

func (m *memStudents) Create(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Email == s.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = fixedNow
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

func (m *memStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStudents) Update(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	cp := *s
	m.rows[s.ID] = &cp
	return nil
}

type memCourses struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Course
}

func newMemCourses(courses ...*models.Course) *memCourses {
	m := &memCourses{rows: map[int64]*models.Course{}}
	for _, c := range courses {
		_ = m.Create(context.Background(), c)
	}
	return m
}

func (m *memCourses) Create(_ context.Context, c *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.StudentID == c.StudentID && row.Name == c.Name {
			return apperrors.ErrResourceAlreadyExists
		}
	}
	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = fixedNow
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCourses) ListByStudent(_ context.Context, studentID int64) ([]*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Course{}
	for _, c := range m.rows {
		if c.StudentID == studentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCourses) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(m.rows, id)
	return nil
}

type memRuns struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.SimulationRun
}

func newMemRuns() *memRuns {
	return &memRuns{rows: map[int64]*models.SimulationRun{}}
}

func (m *memRuns) Create(_ context.Context, r *models.SimulationRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = fixedNow.Add(time.Duration(m.nextID) * time.Minute)
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memRuns) GetByID(_ context.Context, id int64) (*models.SimulationRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrSimulationNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRuns) ListByStudent(_ context.Context, studentID int64, offset, limit uint64) ([]*models.SimulationRun, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []*models.SimulationRun{}
	for _, r := range m.rows {
		if r.StudentID == studentID {
			cp := *r
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []*models.SimulationRun{}, total, nil
	}
	end := offset + limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[offset:end], total, nil
}

func (m *memRuns) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrSimulationNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRuns) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.rows {
		if r.CreatedAt.Before(cutoff) {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

type stubOptimizer struct {
	gotCourses []simulation.CourseRef
	gotReq     simulation.OptimizationRequest
	result     *simulation.OptimizationResult
	err        error
}

func (s *stubOptimizer) Optimize(_ *simulation.StudentProfile, courses []simulation.CourseRef, req simulation.OptimizationRequest) (*simulation.OptimizationResult, error) {
	s.gotCourses = courses
	s.gotReq = req
	return s.result, s.err
}

// fixture is one student with two enrolled courses and an empty run store.
type fixture struct {
	students *memStudents
	courses  *memCourses
	runs     *memRuns
}

func newFixture() fixture {
	students := newMemStudents(&models.Student{Name: "Ada", Email: "ada@example.edu", TargetGPA: 3.5, SleepTargetHours: 7})
	courses := newMemCourses(
		&models.Course{StudentID: 1, Name: "Algorithms", Credits: 3, DifficultyScore: 7.5, WeeklyWorkloadHours: 6},
		&models.Course{StudentID: 1, Name: "Writing", Credits: 2, DifficultyScore: 3, WeeklyWorkloadHours: 2},
	)
	return fixture{students: students, courses: courses, runs: newMemRuns()}
}
