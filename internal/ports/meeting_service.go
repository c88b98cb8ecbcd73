package ports

import (
	"context"
	"io"

	"meetscribe/internal/models"
)

// MeetingProcessor accepts a raw upload and runs it through the full
// pipeline (normalize, then transcribe, then summarize), persisting as it
// goes.
type MeetingProcessor interface {
	Process(
		ctx context.Context,
		ownerID string,
		src io.Reader,
		size int64,
		fileName string,
		title *string,
	) (*models.Meeting, error)
}
