package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/creator-studio/internal/domain"
)

// Completer produces free text for a single free-text instruction.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ContentService handles the ownership-scoped content store and prompt
// generation.
type ContentService struct {
	contents  domain.ContentRepository
	completer Completer
}

// NewContentService creates a new ContentService.
func NewContentService(contents domain.ContentRepository, completer Completer) *ContentService {
	return &ContentService{contents: contents, completer: completer}
}

// Create persists a content item for the user and returns it with the
// server-assigned id and timestamp.
func (s *ContentService) Create(ctx context.Context, userID int64, ctype domain.ContentType, data domain.ContentData) (*domain.ContentItem, error) {
	if !ctype.Valid() {
		return nil, fmt.Errorf("%w: invalid content type %q", domain.ErrInvalidInput, ctype)
	}

	item := &domain.ContentItem{
		UserID: userID,
		Type:   ctype,
		Data:   data,
	}
	if err := s.contents.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return item, nil
}

// Save persists a generated result. Unlike Create, both the prompt and
// the response must be present.
func (s *ContentService) Save(ctx context.Context, userID int64, ctype domain.ContentType, data domain.ContentData) (*domain.ContentItem, error) {
	if data.Prompt == "" || data.Response == "" {
		return nil, fmt.Errorf("%w: prompt and response are required", domain.ErrInvalidInput)
	}
	return s.Create(ctx, userID, ctype, data)
}

// List returns the user's content items, newest first.
func (s *ContentService) List(ctx context.Context, userID int64) ([]domain.ContentItem, error) {
	return s.contents.ListByUser(ctx, userID)
}

// Delete removes an item owned by the user. A missing item and another
// user's item both return ErrNotFound.
func (s *ContentService) Delete(ctx context.Context, userID, id int64) error {
	return s.contents.Delete(ctx, userID, id)
}

// Generate wraps the prompt in a type-specific instruction, submits it to
// the completion provider, and returns the original prompt paired with the
// provider's output. The result is NOT persisted; saving is a separate,
// explicit step.
func (s *ContentService) Generate(ctx context.Context, prompt string, ctype domain.ContentType) (domain.ContentData, error) {
	if strings.TrimSpace(prompt) == "" {
		return domain.ContentData{}, fmt.Errorf("%w: prompt must be a non-empty string", domain.ErrInvalidInput)
	}
	if !ctype.Valid() {
		return domain.ContentData{}, fmt.Errorf("%w: invalid content type %q", domain.ErrInvalidInput, ctype)
	}

	response, err := s.completer.Complete(ctx, instructionFor(ctype, prompt))
	if err != nil {
		return domain.ContentData{}, fmt.Errorf("complete prompt: %w", err)
	}

	return domain.ContentData{
		Prompt:   prompt,
		Response: strings.TrimSpace(response),
	}, nil
}

// instructionFor prepends the per-type constraints to the user's prompt.
// Scripts pass through unmodified.
func instructionFor(ctype domain.ContentType, prompt string) string {
	switch ctype {
	case domain.ContentTypeTitle:
		return "Write up to 5 catchy YouTube titles, each under 12 words. No explanation. Plain text only, no symbols.\n\n" + prompt
	case domain.ContentTypeThumbnailPrompt:
		return "Write a detailed AI image prompt for a YouTube thumbnail, under 30 words. Only one, no options. No explanation.\n\n" + prompt
	case domain.ContentTypeSEO:
		return "Write a concise YouTube SEO description under 30 words. No explanation.\n\n" + prompt
	default:
		return prompt
	}
}
