package backend

import (
	"context"
	"fmt"

	"github.com/ecemk/classboard/internal/pkg/apperrors"

	"github.com/ecemk/classboard/internal/app/models"
)

// ListRooms fetches the room collection. Records failing boundary
// validation reject the whole response; a half-trusted collection is
// worse than a visible error.
func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.get(ctx, "/api/rooms", &rooms); err != nil {
		return nil, err
	}
	for i := range rooms {
		if err := rooms[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrUpstream, fmt.Sprintf("invalid room record: %v", err))
		}
	}
	return rooms, nil
}

// CreateRoom creates a room and returns the stored record.
func (c *Client) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := room.ValidateForCreate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var created models.Room
	if err := c.post(ctx, "/api/rooms", room, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRoom updates an existing room.
func (c *Client) UpdateRoom(ctx context.Context, id int64, room *models.Room) (*models.Room, error) {
	if err := room.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var updated models.Room
	if err := c.put(ctx, fmt.Sprintf("/api/rooms/%d", id), room, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRoom deletes a room by id.
func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/rooms/%d", id))
}

// ListBlocks fetches the building blocks rooms belong to.
func (c *Client) ListBlocks(ctx context.Context) ([]models.Block, error) {
	var blocks []models.Block
	if err := c.get(ctx, "/api/blocks", &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}
