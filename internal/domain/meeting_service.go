package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"meetscribe/internal/domain/stations"
	"meetscribe/internal/models"
	"meetscribe/internal/ports"
)

var ErrUploadTooLarge = errors.New("upload exceeds maximum allowed size")

// MeetingService runs the upload pipeline: store the raw file, create the
// record, then normalize, transcribe and summarize before persisting the
// results. Stages are strictly sequential and the first failure aborts the
// run; the record created up front stays behind in its partially-populated
// state.
type MeetingService struct {
	repo ports.MeetingRepository

	s1 *stations.S1Normalize
	s2 *stations.S2Transcribe
	s3 *stations.S3Summarize

	uploadsDir string
	maxBytes   int64
}

func NewMeetingService(
	repo ports.MeetingRepository,
	s1 *stations.S1Normalize,
	s2 *stations.S2Transcribe,
	s3 *stations.S3Summarize,
	uploadsDir string,
	maxBytes int64,
) *MeetingService {
	return &MeetingService{
		repo:       repo,
		s1:         s1,
		s2:         s2,
		s3:         s3,
		uploadsDir: uploadsDir,
		maxBytes:   maxBytes,
	}
}

func (m *MeetingService) Process(
	ctx context.Context,
	ownerID string,
	src io.Reader,
	size int64,
	fileName string,
	title *string,
) (*models.Meeting, error) {

	// size is checked before a single byte is written
	if size > m.maxBytes {
		return nil, ErrUploadTooLarge
	}

	if err := os.MkdirAll(m.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}

	// random prefix makes stored names collision-free across concurrent uploads
	storedName := uuid.NewString() + "_" + filepath.Base(fileName)
	fullPath := filepath.Join(m.uploadsDir, storedName)

	if err := writeFile(fullPath, src); err != nil {
		return nil, err
	}

	// persisted before processing so the record is discoverable even when a
	// later stage fails
	meeting, err := m.repo.InsertMeeting(ctx, &models.Meeting{
		OwnerID:   ownerID,
		Title:     title,
		AudioPath: fullPath,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.Printf("[PIPELINE][START] meeting=%d file=%s", meeting.ID, storedName)

	wavPath, err := m.s1.Run(ctx, fullPath, m.uploadsDir)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	transcript, diarized, err := m.s2.Run(ctx, wavPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	summary, err := m.s3.Run(ctx, transcript, diarized)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	if err := m.repo.UpdateResults(ctx, meeting.ID, transcript, diarized, summary); err != nil {
		return nil, err
	}
	meeting.Transcript = &transcript
	meeting.DiarizedTranscript = &diarized
	meeting.Summary = &summary

	log.Printf("[PIPELINE][DONE] meeting=%d dur=%s", meeting.ID, time.Since(start))
	return meeting, nil
}

func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close upload file: %w", err)
	}
	return nil
}
