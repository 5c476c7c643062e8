package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/export"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/middleware"
)

// UserController handles user management and provisioning.
type UserController struct {
	users     *services.UserViewService
	students  *services.StudentViewService
	provision *services.ProvisionService
}

// NewUserController creates a new UserController.
func NewUserController(users *services.UserViewService, students *services.StudentViewService, provision *services.ProvisionService) *UserController {
	return &UserController{users: users, students: students, provision: provision}
}

// ListUsers returns one page of the filtered user collection
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on username, email, full name and ID number"
// @Param role query string false "Role filter, 'all' disables"
// @Param status query string false "Status filter"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse} "Users retrieved successfully"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	items, pagination, stale := c.users.List(ctx, query)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ListResponse{
		Items:      items,
		Pagination: pagination,
		Stale:      stale,
	}))
}

// ProvisionUser runs the guided user-creation workflow
// @Summary Provision a user
// @Description Creates a user, creating its department first when asked to
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProvisionUserRequest true "User and department choice"
// @Success 201 {object} dto.APIResponse{data=models.User} "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user data"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email, username or ID number"
// @Failure 502 {object} dto.ErrorResponse "Department creation failed"
// @Router /users/provision [post]
func (c *UserController) ProvisionUser(ctx *gin.Context) {
	var req dto.ProvisionUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	outcome, err := c.provision.Provision(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(outcome.User))
}

// UpdateUser updates a user
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body models.User true "User information"
// @Success 200 {object} dto.APIResponse{data=models.User} "User updated successfully"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "User")
	if !ok {
		return
	}

	var user models.User
	if err := ctx.ShouldBindJSON(&user); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	user.ID = id

	if err := c.users.CheckDuplicate(&user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	updated, err := c.users.Update(ctx, id, &user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}

// DeleteUser deletes a user
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "User deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "User")
	if !ok {
		return
	}

	if err := c.users.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted"))
}

// ExportUsers exports the filtered user list
// @Summary Export users
// @Tags users
// @Produce plain
// @Security BearerAuth
// @Param format query string false "csv or json, defaults to csv"
// @Success 200 {string} string "Export payload"
// @Router /users/export [get]
func (c *UserController) ExportUsers(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	users := c.users.Filtered(ctx, query)
	serveExport(ctx, "users", users, func() string { return export.UsersCSV(users) })
}

// ListStudents returns one page of the filtered student roster
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on name, ID number, email and section"
// @Param status query string false "Status filter"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse} "Students retrieved successfully"
// @Router /students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	items, pagination, stale := c.students.List(ctx, query)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ListResponse{
		Items:      items,
		Pagination: pagination,
		Stale:      stale,
	}))
}

// UpdateStudent updates a student record
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body models.Student true "Student information"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *UserController) UpdateStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "Student")
	if !ok {
		return
	}

	var student models.Student
	if err := ctx.ShouldBindJSON(&student); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}
	student.ID = id

	updated, err := c.students.Update(ctx, id, &student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}
