package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/creator-studio/internal/domain"
	"github.com/msomdec/creator-studio/internal/service"
)

// SpeechHandler converts text to a single audio payload.
type SpeechHandler struct {
	speech *service.SpeechService
}

// NewSpeechHandler creates a new SpeechHandler.
func NewSpeechHandler(speech *service.SpeechService) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// HandleSynthesize returns MP3 bytes for the given text.
// POST /api/tts
// Request:  {"text":"..."}
// Response: audio/mpeg bytes
func (h *SpeechHandler) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	audio, err := h.speech.Synthesize(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "Text is required.")
			return
		}
		slog.Error("synthesize speech", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to generate speech.")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		slog.Error("write audio response", "error", err)
	}
}
