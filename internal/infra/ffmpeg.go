package infra

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"meetscribe/internal/ports"
)

type FfmpegNormalizer struct {
	bin string
}

func NewFfmpegNormalizer(bin string) ports.Normalizer {
	return &FfmpegNormalizer{bin: bin}
}

// Normalize writes <base>_16k.wav into outDir. The context kills ffmpeg when
// the caller gives up.
func (f *FfmpegNormalizer) Normalize(ctx context.Context, inputPath, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	wavPath := filepath.Join(outDir, base+"_16k.wav")

	cmd := exec.CommandContext(ctx, f.bin,
		"-y", "-i", inputPath,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		wavPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg failed: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	return wavPath, nil
}
