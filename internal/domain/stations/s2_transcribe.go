package stations

import (
	"context"
	"log"
	"time"

	"meetscribe/internal/ports"
)

type S2Transcribe struct {
	transcriber ports.Transcriber
	timeout     time.Duration
}

func NewS2Transcribe(transcriber ports.Transcriber, timeout time.Duration) *S2Transcribe {
	return &S2Transcribe{transcriber: transcriber, timeout: timeout}
}

func (s *S2Transcribe) Run(ctx context.Context, audioPath string) (string, string, error) {
	log.Printf("[S2][START] audio=%s", audioPath)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	transcript, diarized, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		log.Printf("[S2][ERR] %v", err)
		return "", "", err
	}

	log.Printf("[S2][OK] text=%q diarized_len=%d dur=%s",
		trim(transcript, 120), len(diarized), time.Since(start))
	return transcript, diarized, nil
}
