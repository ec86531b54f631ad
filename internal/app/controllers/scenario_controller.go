package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/app/services"
	"github.com/yigit/academictwin/internal/middleware"
)

// ScenarioController handles schedule optimization
type ScenarioController struct {
	optimizationService services.OptimizationService
}

// NewScenarioController creates a new ScenarioController
func NewScenarioController(optimizationService services.OptimizationService) *ScenarioController {
	return &ScenarioController{optimizationService: optimizationService}
}

// Optimize searches for the best schedule
// @Summary Optimize a weekly schedule
// @Description Searches work hours, nightly sleep and study strategy with a seeded differential evolution and returns the optimum with a full simulation at it. Rate limited.
// @Tags scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OptimizeRequest true "Optimization request"
// @Success 200 {object} dto.APIResponse{data=simulation.OptimizationResult} "Optimal schedule"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or no courses"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /scenarios/optimize [post]
func (c *ScenarioController) Optimize(ctx *gin.Context) {
	var req dto.OptimizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.optimizationService.Optimize(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
