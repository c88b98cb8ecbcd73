package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"meetscribe/internal/ports"
)

type WhisperXTranscriber struct {
	python  string
	script  string
	hfToken string
}

func NewWhisperXTranscriber(python, script, hfToken string) ports.Transcriber {
	return &WhisperXTranscriber{
		python:  python,
		script:  script,
		hfToken: hfToken,
	}
}

// Both fields are required; decoding as pointers distinguishes a missing key
// from an empty string.
type whisperxPayload struct {
	Transcript *string `json:"transcript"`
	Diarized   *string `json:"diarized"`
}

func (t *WhisperXTranscriber) Transcribe(ctx context.Context, audioPath string) (string, string, error) {
	cmd := exec.CommandContext(ctx, t.python, t.script, "--audio", audioPath)

	// The HF token is a secret: it goes through the environment, never argv.
	cmd.Env = os.Environ()
	if t.hfToken != "" {
		cmd.Env = append(cmd.Env, "HF_TOKEN="+t.hfToken)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", "", fmt.Errorf("whisperx_runner failed: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	var parsed whisperxPayload
	if err := json.Unmarshal(stdout.Bytes(), &parsed); err != nil {
		return "", "", fmt.Errorf("parse whisperx output: %w", err)
	}
	if parsed.Transcript == nil || parsed.Diarized == nil {
		return "", "", fmt.Errorf("whisperx output missing required keys")
	}

	return *parsed.Transcript, *parsed.Diarized, nil
}
