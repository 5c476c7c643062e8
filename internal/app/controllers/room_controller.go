package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/export"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/middleware"
)

// RoomController handles the room management view.
type RoomController struct {
	rooms *services.RoomViewService
}

// NewRoomController creates a new RoomController.
func NewRoomController(rooms *services.RoomViewService) *RoomController {
	return &RoomController{rooms: rooms}
}

// ListRooms returns one page of the filtered room collection
// @Summary List rooms
// @Description Returns the filtered, sorted, paginated room collection
// @Tags rooms
// @Produce json
// @Param search query string false "Substring match on number, name and block"
// @Param type query string false "Room type filter, 'all' disables"
// @Param minCapacity query string false "Minimum capacity, empty means unbounded"
// @Param maxCapacity query string false "Maximum capacity, empty means unbounded"
// @Param facilities query string false "Comma-separated facilities, all must be present"
// @Param sortBy query string false "Sort key: number, capacity or type"
// @Param sortDir query string false "asc or desc"
// @Param page query int false "Page number, out-of-range values clamp"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListResponse} "Rooms retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Router /rooms [get]
func (c *RoomController) ListRooms(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	items, pagination, stale := c.rooms.List(ctx, query)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ListResponse{
		Items:      items,
		Pagination: pagination,
		Stale:      stale,
	}))
}

// CreateRoom creates a room
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 201 {object} dto.APIResponse{data=models.Room} "Room created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid room data"
// @Failure 409 {object} dto.ErrorResponse "Room already exists"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid room data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	room := &models.Room{
		Number:     req.Number,
		Name:       req.Name,
		Type:       models.RoomType(req.Type),
		Capacity:   req.Capacity,
		Facilities: req.Facilities,
		Available:  req.Available,
		BlockID:    req.BlockID,
	}
	created, err := c.rooms.Create(ctx, room)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(created))
}

// UpdateRoom updates a room
// @Summary Update a room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.CreateRoomRequest true "Room information"
// @Success 200 {object} dto.APIResponse{data=models.Room} "Room updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid room data"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id} [put]
func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, ok := pathID(ctx, "Room")
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid room data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	room := &models.Room{
		ID:         id,
		Number:     req.Number,
		Name:       req.Name,
		Type:       models.RoomType(req.Type),
		Capacity:   req.Capacity,
		Facilities: req.Facilities,
		Available:  req.Available,
		BlockID:    req.BlockID,
	}
	updated, err := c.rooms.Update(ctx, id, room)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(updated))
}

// DeleteRoom deletes a room
// @Summary Delete a room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse "Room deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Room not found"
// @Router /rooms/{id} [delete]
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := pathID(ctx, "Room")
	if !ok {
		return
	}

	if err := c.rooms.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Room deleted"))
}

// ListBlocks lists the building blocks for the room form
// @Summary List blocks
// @Tags rooms
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Block} "Blocks retrieved successfully"
// @Router /blocks [get]
func (c *RoomController) ListBlocks(ctx *gin.Context) {
	blocks, err := c.rooms.Blocks(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(blocks))
}

// ExportRooms exports the filtered room list
// @Summary Export rooms
// @Description Exports the current filtered view as CSV or JSON
// @Tags rooms
// @Produce plain
// @Security BearerAuth
// @Param format query string false "csv or json, defaults to csv"
// @Success 200 {string} string "Export payload"
// @Router /rooms/export [get]
func (c *RoomController) ExportRooms(ctx *gin.Context) {
	query, ok := bindListQuery(ctx)
	if !ok {
		return
	}

	rooms := c.rooms.Filtered(ctx, query)
	serveExport(ctx, "rooms", rooms, func() string { return export.RoomsCSV(rooms) })
}

// bindListQuery binds and defaults the shared list parameters.
func bindListQuery(ctx *gin.Context) (dto.ListQuery, bool) {
	var query dto.ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return dto.ListQuery{}, false
	}
	return query, true
}

// pathID parses the numeric id path parameter.
func pathID(ctx *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, resource+" ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

// serveExport writes the filtered view in the requested format with a
// dated download filename.
func serveExport(ctx *gin.Context, name string, data interface{}, csv func() string) {
	filename := fmt.Sprintf("%s-%s", name, time.Now().Format("2006-01-02"))
	switch ctx.DefaultQuery("format", "csv") {
	case "json":
		payload, err := export.JSON(data)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", filename))
		ctx.Data(http.StatusOK, "application/json", payload)
	default:
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		ctx.Data(http.StatusOK, "text/csv", []byte(csv()))
	}
}
