package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/academictwin/internal/app/models/dto"
	"github.com/yigit/academictwin/internal/app/services"
	"github.com/yigit/academictwin/internal/middleware"
)

// CourseController handles course endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse enrolls a student in a course
// @Summary Add a course
// @Description Adds a course to the student's semester. Difficulty defaults to 5 and weekly workload to 3 hours.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.CreateCourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Course name already enrolled"
// @Router /students/{id}/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	studentID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// ListCourses lists a student's courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses in enrollment order"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	studentID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Course deleted"}))
}
