package stations

import (
	"context"
	"log"
	"time"

	"meetscribe/internal/ports"
)

type S1Normalize struct {
	normalizer ports.Normalizer
	timeout    time.Duration
}

func NewS1Normalize(normalizer ports.Normalizer, timeout time.Duration) *S1Normalize {
	return &S1Normalize{normalizer: normalizer, timeout: timeout}
}

func (s *S1Normalize) Run(ctx context.Context, inputPath, outDir string) (string, error) {
	log.Printf("[S1][START] input=%s", inputPath)
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	wavPath, err := s.normalizer.Normalize(ctx, inputPath, outDir)
	if err != nil {
		log.Printf("[S1][ERR] %v", err)
		return "", err
	}

	log.Printf("[S1][OK] wav=%s dur=%s", wavPath, time.Since(start))
	return wavPath, nil
}
