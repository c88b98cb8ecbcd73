package stations

import (
	"context"
	"log"
	"time"

	"meetscribe/internal/ports"
)

func trim(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

type S3Summarize struct {
	summarizer ports.Summarizer
	timeout    time.Duration
}

func NewS3Summarize(summarizer ports.Summarizer, timeout time.Duration) *S3Summarize {
	return &S3Summarize{summarizer: summarizer, timeout: timeout}
}

// Run prefers the speaker-labeled transcript; the plain transcript is the
// fallback when diarization produced nothing.
func (s *S3Summarize) Run(ctx context.Context, transcript, diarized string) (string, error) {
	input := diarized
	if input == "" {
		input = transcript
	}

	log.Printf("[S3][START] input=%q", trim(input, 120))
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	summary, err := s.summarizer.Summarize(ctx, input)
	if err != nil {
		log.Printf("[S3][ERR] %v", err)
		return "", err
	}

	log.Printf("[S3][OK] summary=%q dur=%s", trim(summary, 120), time.Since(start))
	return summary, nil
}
