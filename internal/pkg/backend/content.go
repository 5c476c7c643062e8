package backend

import (
	"context"
	"fmt"

	"github.com/ecemk/classboard/internal/pkg/apperrors"

	"github.com/ecemk/classboard/internal/app/models"
)

// ListFeedback fetches the feedback collection.
func (c *Client) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := c.get(ctx, "/api/feedback", &feedback); err != nil {
		return nil, err
	}
	for i := range feedback {
		if err := feedback[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrUpstream, fmt.Sprintf("invalid feedback record: %v", err))
		}
	}
	return feedback, nil
}

// CreateFeedback submits a feedback entry.
func (c *Client) CreateFeedback(ctx context.Context, entry *models.Feedback) (*models.Feedback, error) {
	if err := entry.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var created models.Feedback
	if err := c.post(ctx, "/api/feedback", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SetFeedbackStatus moves a feedback entry through moderation.
func (c *Client) SetFeedbackStatus(ctx context.Context, id int64, status models.FeedbackStatus) error {
	if !status.Valid() {
		return apperrors.New(apperrors.ErrValidationFailed, fmt.Sprintf("unknown feedback status %q", status))
	}
	body := map[string]string{"status": string(status)}
	return c.put(ctx, fmt.Sprintf("/api/feedback/%d", id), body, nil)
}

// DeleteFeedback deletes a feedback entry by id.
func (c *Client) DeleteFeedback(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/feedback/%d", id))
}

// ListAnnouncements fetches the announcement collection.
func (c *Client) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if err := c.get(ctx, "/api/announcements", &announcements); err != nil {
		return nil, err
	}
	for i := range announcements {
		if err := announcements[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrUpstream, fmt.Sprintf("invalid announcement record: %v", err))
		}
	}
	return announcements, nil
}

// CreateAnnouncement publishes an announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error) {
	if err := announcement.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var created models.Announcement
	if err := c.post(ctx, "/api/announcements", announcement, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAnnouncement updates an existing announcement.
func (c *Client) UpdateAnnouncement(ctx context.Context, id int64, announcement *models.Announcement) (*models.Announcement, error) {
	if err := announcement.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var updated models.Announcement
	if err := c.put(ctx, fmt.Sprintf("/api/announcements/%d", id), announcement, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAnnouncement deletes an announcement by id.
func (c *Client) DeleteAnnouncement(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/announcements/%d", id))
}

// ListSchedule fetches one instructor's or section's timetable entries.
func (c *Client) ListSchedule(ctx context.Context, userID int64) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if err := c.get(ctx, fmt.Sprintf("/api/schedules/user/%d", userID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
