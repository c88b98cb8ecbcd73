package ports

import (
	"context"

	"meetscribe/internal/models"
)

type MeetingRepository interface {
	InsertMeeting(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error)

	// UpdateResults writes the pipeline outputs back onto an existing row.
	UpdateResults(ctx context.Context, id int, transcript, diarized, summary string) error

	ListByOwner(ctx context.Context, ownerID string) ([]models.Meeting, error)

	// GetByIDAndOwner returns nil when the row is absent or owned by someone else.
	GetByIDAndOwner(ctx context.Context, id int, ownerID string) (*models.Meeting, error)
}
