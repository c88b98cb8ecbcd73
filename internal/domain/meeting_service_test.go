package domain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meetscribe/internal/domain/stations"
	"meetscribe/internal/models"
)

// ---------------- fakes ----------------

type fakeMeetingRepo struct {
	meetings []*models.Meeting
	nextID   int
}

func (r *fakeMeetingRepo) InsertMeeting(ctx context.Context, m *models.Meeting) (*models.Meeting, error) {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now().UTC()
	r.meetings = append(r.meetings, m)
	return m, nil
}

func (r *fakeMeetingRepo) UpdateResults(ctx context.Context, id int, transcript, diarized, summary string) error {
	for _, m := range r.meetings {
		if m.ID == id {
			m.Transcript = &transcript
			m.DiarizedTranscript = &diarized
			m.Summary = &summary
			return nil
		}
	}
	return fmt.Errorf("meeting %d not found", id)
}

func (r *fakeMeetingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Meeting, error) {
	out := make([]models.Meeting, 0)
	for _, m := range r.meetings {
		if m.OwnerID == ownerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMeetingRepo) GetByIDAndOwner(ctx context.Context, id int, ownerID string) (*models.Meeting, error) {
	for _, m := range r.meetings {
		if m.ID == id && m.OwnerID == ownerID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

type stubNormalizer struct {
	err error
}

func (n *stubNormalizer) Normalize(ctx context.Context, inputPath, outDir string) (string, error) {
	if n.err != nil {
		return "", n.err
	}
	return inputPath + "_16k.wav", nil
}

type stubTranscriber struct {
	transcript string
	diarized   string
	err        error
	gotPath    string
}

func (t *stubTranscriber) Transcribe(ctx context.Context, audioPath string) (string, string, error) {
	t.gotPath = audioPath
	if t.err != nil {
		return "", "", t.err
	}
	return t.transcript, t.diarized, nil
}

// echoes its input so tests can see which transcript it received
type echoSummarizer struct {
	gotInput string
	err      error
}

func (s *echoSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s.gotInput = text
	if s.err != nil {
		return "", s.err
	}
	return text, nil
}

func newService(t *testing.T, repo *fakeMeetingRepo, tr *stubTranscriber, sum *echoSummarizer, maxBytes int64) (*MeetingService, string) {
	t.Helper()
	dir := t.TempDir()
	s1 := stations.NewS1Normalize(&stubNormalizer{}, time.Minute)
	s2 := stations.NewS2Transcribe(tr, time.Minute)
	s3 := stations.NewS3Summarize(sum, time.Minute)
	return NewMeetingService(repo, s1, s2, s3, dir, maxBytes), dir
}

// ---------------- tests ----------------

func TestProcess_HappyPath(t *testing.T) {
	repo := &fakeMeetingRepo{}
	tr := &stubTranscriber{transcript: "hello", diarized: "[A] hello"}
	sum := &echoSummarizer{}
	svc, dir := newService(t, repo, tr, sum, 1<<20)

	content := "fake audio bytes"
	title := "standup"
	meeting, err := svc.Process(context.Background(), "user-1", strings.NewReader(content), int64(len(content)), "meeting.m4a", &title)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}

	// uploaded bytes are durably written, byte for byte
	stored, err := os.ReadFile(meeting.AudioPath)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(stored) != content {
		t.Errorf("stored content mismatch: %q", stored)
	}
	if filepath.Dir(meeting.AudioPath) != dir {
		t.Errorf("file written outside uploads dir: %s", meeting.AudioPath)
	}

	if meeting.OwnerID != "user-1" {
		t.Errorf("owner = %q", meeting.OwnerID)
	}
	if meeting.Title == nil || *meeting.Title != "standup" {
		t.Errorf("title not preserved: %v", meeting.Title)
	}
	if meeting.Transcript == nil || *meeting.Transcript != "hello" {
		t.Errorf("transcript = %v", meeting.Transcript)
	}
	// diarized transcript is preferred for summarization
	if meeting.Summary == nil || *meeting.Summary != "[A] hello" {
		t.Errorf("summary = %v, want diarized input echoed", meeting.Summary)
	}

	// the normalized path, not the raw one, reaches the transcriber
	if !strings.HasSuffix(tr.gotPath, "_16k.wav") {
		t.Errorf("transcriber got %q, want normalized path", tr.gotPath)
	}

	// results are persisted, not just returned
	persisted, _ := repo.GetByIDAndOwner(context.Background(), meeting.ID, "user-1")
	if persisted == nil || persisted.Summary == nil || *persisted.Summary != "[A] hello" {
		t.Error("results not persisted on the record")
	}
}

func TestProcess_SummarizerFallsBackToPlainTranscript(t *testing.T) {
	repo := &fakeMeetingRepo{}
	tr := &stubTranscriber{transcript: "plain text", diarized: ""}
	sum := &echoSummarizer{}
	svc, _ := newService(t, repo, tr, sum, 1<<20)

	if _, err := svc.Process(context.Background(), "u", strings.NewReader("x"), 1, "a.wav", nil); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if sum.gotInput != "plain text" {
		t.Errorf("summarizer got %q, want plain transcript fallback", sum.gotInput)
	}
}

func TestProcess_RejectsOversizedBeforeWriting(t *testing.T) {
	repo := &fakeMeetingRepo{}
	svc, dir := newService(t, repo, &stubTranscriber{}, &echoSummarizer{}, 10)

	_, err := svc.Process(context.Background(), "u", strings.NewReader("way too many bytes"), 18, "big.wav", nil)
	if !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("uploads dir not empty after rejection: %d entries", len(entries))
	}
	if len(repo.meetings) != 0 {
		t.Errorf("record created for rejected upload")
	}
}

func TestProcess_TranscriberFailureLeavesPartialRecord(t *testing.T) {
	repo := &fakeMeetingRepo{}
	tr := &stubTranscriber{err: errors.New("whisperx exploded")}
	sum := &echoSummarizer{}
	svc, _ := newService(t, repo, tr, sum, 1<<20)

	title := "broken"
	_, err := svc.Process(context.Background(), "u", strings.NewReader("x"), 1, "a.wav", &title)
	if err == nil {
		t.Fatal("expected error from failing transcriber")
	}
	if !strings.Contains(err.Error(), "whisperx exploded") {
		t.Errorf("diagnostic lost: %v", err)
	}

	// the record survives with file/title/owner but no pipeline fields
	if len(repo.meetings) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.meetings))
	}
	m := repo.meetings[0]
	if m.AudioPath == "" {
		t.Error("audio path not set")
	}
	if m.Title == nil || *m.Title != "broken" {
		t.Error("title not set")
	}
	if m.Transcript != nil || m.DiarizedTranscript != nil || m.Summary != nil {
		t.Error("pipeline fields set despite failure")
	}
	if sum.gotInput != "" {
		t.Error("summarizer ran after transcription failure")
	}
}

func TestProcess_NormalizerFailureAborts(t *testing.T) {
	repo := &fakeMeetingRepo{}
	tr := &stubTranscriber{transcript: "x", diarized: "y"}
	dir := t.TempDir()
	s1 := stations.NewS1Normalize(&stubNormalizer{err: errors.New("ffmpeg failed")}, time.Minute)
	s2 := stations.NewS2Transcribe(tr, time.Minute)
	s3 := stations.NewS3Summarize(&echoSummarizer{}, time.Minute)
	svc := NewMeetingService(repo, s1, s2, s3, dir, 1<<20)

	_, err := svc.Process(context.Background(), "u", strings.NewReader("x"), 1, "a.wav", nil)
	if err == nil || !strings.Contains(err.Error(), "normalize") {
		t.Fatalf("expected normalize error, got %v", err)
	}
	if tr.gotPath != "" {
		t.Error("transcriber ran after normalization failure")
	}
}

func TestProcess_StoredNamesAreUnique(t *testing.T) {
	repo := &fakeMeetingRepo{}
	svc, _ := newService(t, repo, &stubTranscriber{transcript: "t", diarized: "d"}, &echoSummarizer{}, 1<<20)

	m1, err := svc.Process(context.Background(), "u", strings.NewReader("a"), 1, "same.wav", nil)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := svc.Process(context.Background(), "u", strings.NewReader("b"), 1, "same.wav", nil)
	if err != nil {
		t.Fatal(err)
	}
	if m1.AudioPath == m2.AudioPath {
		t.Errorf("two uploads with the same file name collided: %s", m1.AudioPath)
	}
}
