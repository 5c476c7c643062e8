package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/middleware"
)

// AcademicsController handles the course catalogue plus the department
// and faculty selectors.
type AcademicsController struct {
	academics *services.AcademicsService
}

// NewAcademicsController creates a new AcademicsController.
func NewAcademicsController(academics *services.AcademicsService) *AcademicsController {
	return &AcademicsController{academics: academics}
}

// ListCourses returns one page of the filtered course catalogue
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on code and name"
// @Param type query string false "Category filter, 'all' disables"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse} "Courses retrieved successfully"
// @Router /courses [get]
func (c *AcademicsController) ListCourses(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	items, pagination, stale := c.academics.ListCourses(ctx, query)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ListResponse{
		Items:      items,
		Pagination: pagination,
		Stale:      stale,
	}))
}

// CreateCourse creates a course
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses [post]
func (c *AcademicsController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	created, err := c.academics.CreateCourse(ctx, courseFromRequest(&req, 0))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created))
}

// UpdateCourse updates a course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *AcademicsController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "Course")
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	updated, err := c.academics.UpdateCourse(ctx, id, courseFromRequest(&req, id))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Course deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [delete]
func (c *AcademicsController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "Course")
	if !ok {
		return
	}

	if err := c.academics.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted"))
}

// ListDepartments lists the departments for the selectors
// @Summary List departments
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments retrieved successfully"
// @Router /departments [get]
func (c *AcademicsController) ListDepartments(ctx *gin.Context) {
	departments, err := c.academics.Departments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(departments))
}

// DeleteDepartment deletes a department
// @Summary Delete a department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse "Department deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [delete]
func (c *AcademicsController) DeleteDepartment(ctx *gin.Context) {
	id, ok := pathID(ctx, "Department")
	if !ok {
		return
	}

	if err := c.academics.DeleteDepartment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Department deleted"))
}

// ListFaculties lists the faculties with their department counts
// @Summary List faculties
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculties retrieved successfully"
// @Router /faculties [get]
func (c *AcademicsController) ListFaculties(ctx *gin.Context) {
	faculties, err := c.academics.Faculties(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(faculties))
}

func courseFromRequest(req *dto.CreateCourseRequest, id int64) *models.Course {
	return &models.Course{
		ID:            id,
		Code:          req.Code,
		Name:          req.Name,
		CreditHours:   req.CreditHours,
		LectureHours:  req.LectureHours,
		LabHours:      req.LabHours,
		TutorialHours: req.TutorialHours,
		Category:      models.CourseCategory(req.Category),
		DepartmentID:  req.DepartmentID,
	}
}
