// Package services holds the application logic between the HTTP controllers
// and the repositories.
//
// Services defined in this package:
//   - StudentService: student profiles
//   - CourseService: a student's enrolled courses
//   - SimulationService: running, storing, comparing and batching semester simulations
//   - OptimizationService: searching for the best weekly schedule
package services

import (
	"github.com/yigit/academictwin/internal/app/repositories"
	"github.com/yigit/academictwin/internal/simulation"
)

// Services bundles every service the controllers need.
type Services struct {
	StudentService      StudentService
	CourseService       CourseService
	SimulationService   SimulationService
	OptimizationService OptimizationService
}

// Options carries the tunables the services read from configuration.
type Options struct {
	BatchWorkers int
	MaxBatchSize int
}

// NewServices wires the services over the repositories and the simulation
// core.
func NewServices(repos *repositories.Repositories, engine simulation.Runner, optimizer ScheduleOptimizer, opts Options) *Services {
	return &Services{
		StudentService:      NewStudentService(repos.StudentRepository),
		CourseService:       NewCourseService(repos.CourseRepository, repos.StudentRepository),
		SimulationService:   NewSimulationService(repos.StudentRepository, repos.CourseRepository, repos.SimulationRunRepository, engine, opts),
		OptimizationService: NewOptimizationService(repos.StudentRepository, repos.CourseRepository, optimizer),
	}
}
