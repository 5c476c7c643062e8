package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/export"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/middleware"
)

// ContentController handles feedback moderation and the announcement
// board.
type ContentController struct {
	feedback      *services.FeedbackViewService
	announcements *services.AnnouncementViewService
}

// NewContentController creates a new ContentController.
func NewContentController(feedback *services.FeedbackViewService, announcements *services.AnnouncementViewService) *ContentController {
	return &ContentController{feedback: feedback, announcements: announcements}
}

// ListFeedback returns one page of the filtered feedback collection
// @Summary List feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on author, message and ID number"
// @Param status query string false "Moderation status filter"
// @Param role query string false "Author role filter"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse} "Feedback retrieved successfully"
// @Router /feedback [get]
func (c *ContentController) ListFeedback(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	items, pagination, stale := c.feedback.List(ctx, query)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ListResponse{
		Items:      items,
		Pagination: pagination,
		Stale:      stale,
	}))
}

// SubmitFeedback records a new feedback entry
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Feedback entry"
// @Success 201 {object} dto.APIResponse{data=models.Feedback} "Feedback submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid feedback data"
// @Router /feedback [post]
func (c *ContentController) SubmitFeedback(ctx *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid feedback data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	entry := &models.Feedback{
		Author:   req.Author,
		RoleType: models.FeedbackRole(req.RoleType),
		Message:  req.Message,
		Status:   models.FeedbackPending,
		IDNumber: req.IDNumber,
	}
	created, err := c.feedback.Submit(ctx, entry)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created))
}

// ModerateFeedback approves or rejects a feedback entry
// @Summary Moderate feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param request body dto.ModerateFeedbackRequest true "New status"
// @Success 200 {object} dto.APIResponse "Feedback moderated successfully"
// @Failure 404 {object} dto.ErrorResponse "Feedback not found"
// @Router /feedback/{id}/status [put]
func (c *ContentController) ModerateFeedback(ctx *gin.Context) {
	id, ok := pathID(ctx, "Feedback")
	if !ok {
		return
	}

	var req dto.ModerateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.feedback.Moderate(ctx, id, models.FeedbackStatus(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Feedback "+req.Status))
}

// DeleteFeedback deletes a feedback entry
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} dto.APIResponse "Feedback deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Feedback not found"
// @Router /feedback/{id} [delete]
func (c *ContentController) DeleteFeedback(ctx *gin.Context) {
	id, ok := pathID(ctx, "Feedback")
	if !ok {
		return
	}

	if err := c.feedback.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Feedback deleted"))
}

// ExportFeedback exports the filtered feedback list
// @Summary Export feedback
// @Tags feedback
// @Produce plain
// @Security BearerAuth
// @Param format query string false "csv or json, defaults to csv"
// @Success 200 {string} string "Export payload"
// @Router /feedback/export [get]
func (c *ContentController) ExportFeedback(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	entries := c.feedback.Filtered(ctx, query)
	serveExport(ctx, "feedback", entries, func() string { return export.FeedbackCSV(entries) })
}

// ListAnnouncements returns one page of announcements scoped to the
// viewer
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param search query string false "Substring match on title, content and author"
// @Param type query string false "Priority filter"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse} "Announcements retrieved successfully"
// @Router /announcements [get]
func (c *ContentController) ListAnnouncements(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	viewer, _ := middleware.SessionUser(ctx)
	var departmentID *int64
	scoped := true
	if viewer != nil {
		departmentID = viewer.DepartmentID
		// Admins and department heads manage the board unscoped.
		scoped = viewer.Role != models.RoleAdmin && viewer.Role != models.RoleDepartmentHead
	}

	items, pagination, stale := c.announcements.List(ctx, query, departmentID, scoped)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ListResponse{
		Items:      items,
		Pagination: pagination,
		Stale:      stale,
	}))
}

// CreateAnnouncement publishes an announcement
// @Summary Create an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} dto.APIResponse{data=models.Announcement} "Announcement created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid announcement data"
// @Router /announcements [post]
func (c *ContentController) CreateAnnouncement(ctx *gin.Context) {
	announcement, ok := c.bindAnnouncement(ctx, 0)
	if !ok {
		return
	}

	created, err := c.announcements.Create(ctx, announcement)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created))
}

// UpdateAnnouncement updates an announcement
// @Summary Update an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body dto.CreateAnnouncementRequest true "Announcement"
// @Success 200 {object} dto.APIResponse{data=models.Announcement} "Announcement updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [put]
func (c *ContentController) UpdateAnnouncement(ctx *gin.Context) {
	id, ok := pathID(ctx, "Announcement")
	if !ok {
		return
	}

	announcement, ok := c.bindAnnouncement(ctx, id)
	if !ok {
		return
	}

	updated, err := c.announcements.Update(ctx, id, announcement)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}

// DeleteAnnouncement deletes an announcement
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.APIResponse "Announcement deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [delete]
func (c *ContentController) DeleteAnnouncement(ctx *gin.Context) {
	id, ok := pathID(ctx, "Announcement")
	if !ok {
		return
	}

	if err := c.announcements.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Announcement deleted"))
}

func (c *ContentController) bindAnnouncement(ctx *gin.Context, id int64) (*models.Announcement, bool) {
	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid announcement data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return nil, false
	}

	announcement := &models.Announcement{
		ID:           id,
		Title:        req.Title,
		Content:      req.Content,
		Priority:     models.Priority(req.Priority),
		DepartmentID: req.DepartmentID,
		Published:    req.Published,
	}
	if viewer, ok := middleware.SessionUser(ctx); ok {
		announcement.AuthorName = viewer.Username
	}
	if req.ExpiresAt != nil {
		expires, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "expires_at must be RFC 3339").WithField("expires_at")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
			return nil, false
		}
		announcement.ExpiresAt = &expires
	}
	return announcement, true
}
