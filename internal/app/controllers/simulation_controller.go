package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/app/services"
	"github.com/yigit/academictwin/internal/middleware"
	"github.com/yigit/academictwin/internal/pkg/helpers"
)

// SimulationController handles simulation run endpoints
type SimulationController struct {
	simulationService services.SimulationService
}

// NewSimulationController creates a new SimulationController
func NewSimulationController(simulationService services.SimulationService) *SimulationController {
	return &SimulationController{simulationService: simulationService}
}

// RunSimulation runs and stores a scenario
// @Summary Run a semester simulation
// @Description Simulates the scenario week by week against the student's courses and stores the result.
// @Tags simulations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RunSimulationRequest true "Scenario"
// @Success 201 {object} dto.APIResponse{data=simulation.SimulationResult} "Simulation stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid scenario or no courses"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /simulations/run [post]
func (c *SimulationController) RunSimulation(ctx *gin.Context) {
	var req dto.RunSimulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.simulationService.RunSimulation(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(result))
}

// GetSimulation returns a stored run
// @Summary Get a simulation
// @Tags simulations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Simulation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=simulation.SimulationResult} "Simulation retrieved"
// @Failure 404 {object} dto.ErrorResponse "Simulation not found"
// @Router /simulations/{id} [get]
func (c *SimulationController) GetSimulation(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.simulationService.GetSimulation(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// ListSimulations lists a student's runs
// @Summary List a student's simulations
// @Description Newest first.
// @Tags simulations
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID" Format(int64) minimum(1)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.SimulationRunListItem}} "Simulations retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /simulations/student/{studentId} [get]
func (c *SimulationController) ListSimulations(ctx *gin.Context) {
	studentID, ok := middleware.ParseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.simulationService.ListSimulations(ctx.Request.Context(), studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list))
}

// DeleteSimulation removes a stored run
// @Summary Delete a simulation
// @Tags simulations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Simulation ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Simulation deleted"
// @Failure 404 {object} dto.ErrorResponse "Simulation not found"
// @Router /simulations/{id} [delete]
func (c *SimulationController) DeleteSimulation(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.simulationService.DeleteSimulation(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Simulation run deleted"}))
}

// CompareSimulations compares two stored runs
// @Summary Compare two simulations
// @Description Returns both results and the B minus A deltas of the headline figures.
// @Tags simulations
// @Produce json
// @Security BearerAuth
// @Param a query int true "First simulation ID"
// @Param b query int true "Second simulation ID"
// @Success 200 {object} dto.APIResponse{data=dto.SimulationComparison} "Comparison"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid IDs"
// @Failure 404 {object} dto.ErrorResponse "Simulation not found"
// @Router /simulations/compare [get]
func (c *SimulationController) CompareSimulations(ctx *gin.Context) {
	aID, errA := strconv.ParseInt(ctx.Query("a"), 10, 64)
	bID, errB := strconv.ParseInt(ctx.Query("b"), 10, 64)
	if errA != nil || errB != nil || aID <= 0 || bID <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid simulation IDs").
			WithDetails("query parameters a and b must be positive numbers")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	cmp, err := c.simulationService.CompareSimulations(ctx.Request.Context(), aID, bID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(cmp))
}

// RunBatch simulates several scenarios at once
// @Summary Run a batch of scenarios
// @Description Runs every scenario concurrently for one student without storing them, and points at the best GPA and lowest burnout result.
// @Tags simulations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchSimulationRequest true "Scenarios"
// @Success 200 {object} dto.APIResponse{data=dto.BatchSimulationResponse} "Batch results"
// @Failure 400 {object} dto.ErrorResponse "Invalid scenarios or batch too large"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /simulations/batch [post]
func (c *SimulationController) RunBatch(ctx *gin.Context) {
	var req dto.BatchSimulationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	resp, err := c.simulationService.RunBatch(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
