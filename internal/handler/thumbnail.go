package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// ImageGenerator turns a text prompt into a hosted image URL.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ThumbnailHandler generates thumbnail images through the image provider.
type ThumbnailHandler struct {
	images ImageGenerator
}

// NewThumbnailHandler creates a new ThumbnailHandler.
func NewThumbnailHandler(images ImageGenerator) *ThumbnailHandler {
	return &ThumbnailHandler{images: images}
}

// HandleGenerate submits the prompt to the image provider. Generation can
// take several minutes; the provider error is logged server-side only.
// POST /api/thumbnail
// Request:  {"prompt":"..."}
// Response: {"imageUrl":"..."}
func (h *ThumbnailHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeMessage(w, http.StatusBadRequest, "Prompt is required.")
		return
	}

	imageURL, err := h.images.Generate(r.Context(), req.Prompt)
	if err != nil {
		slog.Error("generate thumbnail", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Image generation failed.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}
