package domain

import (
	"context"
	"time"
)

// ContentType tags a content item with the kind of artifact it holds.
type ContentType string

const (
	ContentTypeScript          ContentType = "script"
	ContentTypeTitle           ContentType = "title"
	ContentTypeThumbnailPrompt ContentType = "thumbnailPrompt"
	ContentTypeSEO             ContentType = "seo"
)

// Valid reports whether t is one of the four allowed content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeScript, ContentTypeTitle, ContentTypeThumbnailPrompt, ContentTypeSEO:
		return true
	}
	return false
}

// ContentData is the payload of a content item: the prompt the user
// supplied and the text that was generated (or authored) for it.
type ContentData struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// ContentItem is a generated-or-authored artifact owned by exactly one
// user. Items are immutable once created; only create and delete exist.
type ContentItem struct {
	ID        int64
	UserID    int64
	Type      ContentType
	Data      ContentData
	CreatedAt time.Time
}

// ContentRepository defines persistence operations for content items.
// Reads and deletes are always scoped to the owning user.
type ContentRepository interface {
	Create(ctx context.Context, item *ContentItem) error
	// ListByUser returns the user's items, newest first.
	ListByUser(ctx context.Context, userID int64) ([]ContentItem, error)
	// Delete removes the item only if it belongs to userID. Returns
	// ErrNotFound otherwise, whether the item is missing or owned by
	// someone else.
	Delete(ctx context.Context, userID, id int64) error
}
