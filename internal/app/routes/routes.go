package routes

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yigit/academictwin/internal/app/controllers"
	"github.com/yigit/academictwin/internal/middleware"
)

// SetupRouter configures all application routes. authMiddleware may be nil,
// in which case every route is public. optimizeLimiter may be nil to disable
// rate limiting of the optimizer.
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	simulationController *controllers.SimulationController,
	scenarioController *controllers.ScenarioController,
	authMiddleware *middleware.AuthMiddleware,
	optimizeLimiter *rate.Limiter,
) {
	router.GET("/ping", healthController.Ping)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", healthController.Health)

	// --- Public routes ---
	// Registration stays open so a token can be minted for the new student.
	v1.POST("/students", studentController.CreateStudent)

	// --- Student-scoped routes ---
	protected := v1.Group("")
	if authMiddleware != nil {
		protected.Use(authMiddleware.JWTAuth())
	}

	students := protected.Group("/students")
	{
		students.GET("/:id", studentController.GetStudent)
		students.PUT("/:id", studentController.UpdateStudent)

		students.POST("/:id/courses", courseController.CreateCourse)
		students.GET("/:id/courses", courseController.ListCourses)
	}

	protected.DELETE("/courses/:id", courseController.DeleteCourse)

	simulations := protected.Group("/simulations")
	{
		simulations.POST("/run", simulationController.RunSimulation)
		simulations.POST("/batch", simulationController.RunBatch)
		simulations.GET("/compare", simulationController.CompareSimulations)
		simulations.GET("/student/:studentId", simulationController.ListSimulations)
		simulations.GET("/:id", simulationController.GetSimulation)
		simulations.DELETE("/:id", simulationController.DeleteSimulation)
	}

	scenarios := protected.Group("/scenarios")
	{
		// The optimizer runs hundreds of simulations per request.
		scenarios.POST("/optimize", middleware.RateLimit(optimizeLimiter), scenarioController.Optimize)
	}
}
