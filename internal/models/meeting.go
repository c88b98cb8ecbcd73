package models

import "time"

type Meeting struct {
	ID                 int       `db:"id"`
	OwnerID            string    `db:"owner_id"` // subject claim from the access token
	Title              *string   `db:"title"`
	AudioPath          string    `db:"audio_path"`
	Transcript         *string   `db:"transcript"`          // nullable, set after transcription
	DiarizedTranscript *string   `db:"diarized_transcript"` // nullable, empty when diarization unavailable
	Summary            *string   `db:"summary"`             // nullable, set after summarization
	CreatedAt          time.Time `db:"created_at"`
}
