package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"meetscribe/internal/domain"
	"meetscribe/internal/models"
	"meetscribe/internal/ports"
)

type MeetingHandler struct {
	meetings   ports.MeetingRepository
	processor  ports.MeetingProcessor
	uploadsDir string
	maxBytes   int64
	log        *logger.ZapLogger
}

func NewMeetingHandler(
	meetings ports.MeetingRepository,
	processor ports.MeetingProcessor,
	uploadsDir string,
	maxBytes int64,
	log *logger.ZapLogger,
) *MeetingHandler {
	return &MeetingHandler{
		meetings:   meetings,
		processor:  processor,
		uploadsDir: uploadsDir,
		maxBytes:   maxBytes,
		log:        log,
	}
}

type MeetingResponse struct {
	ID                 int     `json:"id"`
	Title              *string `json:"title"`
	AudioURL           string  `json:"audioUrl"`
	Summary            *string `json:"summary"`
	Transcript         *string `json:"transcript"`
	DiarizedTranscript *string `json:"diarizedTranscript"`
	CreatedUtc         string  `json:"createdUtc"`
}

func toResponse(m *models.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:                 m.ID,
		Title:              m.Title,
		AudioURL:           "/file/" + filepath.Base(m.AudioPath),
		Summary:            m.Summary,
		Transcript:         m.Transcript,
		DiarizedTranscript: m.DiarizedTranscript,
		CreatedUtc:         m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// POST /api/meetings/upload
func (h *MeetingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// hard cap on the request body; 1 MiB of slack for multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "missing audio file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	var title *string
	if t := r.FormValue("title"); t != "" {
		title = &t
	}

	meeting, err := h.processor.Process(r.Context(), ownerID, file, header.Size, header.Filename, title)
	if err != nil {
		if errors.Is(err, domain.ErrUploadTooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "upload pipeline failed",
			Error:   err,
		})
		http.Error(w, "processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "meeting processed",
		Fields: map[string]any{
			"meetingID": meeting.ID,
			"owner":     ownerID,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toResponse(meeting))
}

// GET /api/meetings
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.meetings.ListByOwner(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "failed to list meetings: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]MeetingResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// GET /api/meetings/{id}
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	meeting, err := h.meetings.GetByIDAndOwner(r.Context(), id, ownerID)
	if err != nil {
		http.Error(w, "failed to get meeting: "+err.Error(), http.StatusInternalServerError)
		return
	}
	// a foreign record is indistinguishable from a missing one
	if meeting == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toResponse(meeting))
}

// GET /file/{name}
func (h *MeetingHandler) File(w http.ResponseWriter, r *http.Request) {
	// base name only, so "../" can't escape the uploads dir
	name := filepath.Base(chi.URLParam(r, "name"))
	path := filepath.Join(h.uploadsDir, name)

	if _, err := os.Stat(path); err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	http.ServeFile(w, r, path)
}
