package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/creator-studio/internal/domain"
	"github.com/msomdec/creator-studio/internal/service"
)

// ContentHandler handles content-related HTTP requests. Every operation
// is scoped to the authenticated user.
type ContentHandler struct {
	contents *service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contents *service.ContentService) *ContentHandler {
	return &ContentHandler{contents: contents}
}

// HandleCreate persists a manually authored content item.
// POST /api/content
// Request:  {"type":"...","data":{"prompt":"...","response":"..."}}
// Response: created item
func (h *ContentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Type string              `json:"type"`
		Data *domain.ContentData `json:"data"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Data == nil {
		writeMessage(w, http.StatusBadRequest, "Data must be a valid object.")
		return
	}

	item, err := h.contents.Create(r.Context(), user.ID, domain.ContentType(req.Type), *req.Data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "Invalid content type.")
			return
		}
		slog.Error("create content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create content.")
		return
	}

	writeJSON(w, http.StatusCreated, toContentItemDTO(item))
}

// HandleList returns the caller's content, newest first.
// GET /api/content
// Response: array of items
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	items, err := h.contents.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch content.")
		return
	}

	writeJSON(w, http.StatusOK, toContentItemDTOs(items))
}

// HandleSave persists a previously generated result.
// POST /api/content/save
// Request:  {"type":"...","data":{"prompt":"...","response":"..."}}
// Response: created item
func (h *ContentHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Type string             `json:"type"`
		Data domain.ContentData `json:"data"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	item, err := h.contents.Save(r.Context(), user.ID, domain.ContentType(req.Type), req.Data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, "Invalid content data.")
			return
		}
		slog.Error("save content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to save content.")
		return
	}

	writeJSON(w, http.StatusCreated, toContentItemDTO(item))
}

// HandleGenerate runs the completion provider for a prompt. The result is
// not persisted; the client saves it explicitly.
// POST /api/content/generate
// Request:  {"prompt":"...","type":"..."}
// Response: {"type":"...","data":{"prompt":"...","response":"..."}}
func (h *ContentHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Prompt string `json:"prompt"`
		Type   string `json:"type"`
	}
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	data, err := h.contents.Generate(r.Context(), req.Prompt, domain.ContentType(req.Type))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("generate content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Generation failed.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"type": req.Type,
		"data": ContentDataDTO{Prompt: data.Prompt, Response: data.Response},
	})
}

// HandleDelete removes one of the caller's items. Another user's item and
// a nonexistent item are both 404.
// DELETE /api/content/{id}
// Response: {"message":"..."} or 404
func (h *ContentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid content id.")
		return
	}

	if err := h.contents.Delete(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Content not found.")
			return
		}
		slog.Error("delete content", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to delete content.")
		return
	}

	writeMessage(w, http.StatusOK, "Content deleted successfully.")
}
