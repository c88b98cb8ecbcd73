package ports

import "context"

// Normalizer converts arbitrary input audio into mono 16 kHz WAV.
type Normalizer interface {
	Normalize(ctx context.Context, inputPath, outDir string) (wavPath string, err error)
}
