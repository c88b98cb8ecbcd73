package ports

import "context"

// Transcriber produces a plain transcript and a speaker-labeled transcript.
// Diarized may be empty when diarization is unavailable.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (transcript string, diarized string, err error)
}
