package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/msomdec/creator-studio/internal/domain"
)

// ContentRepository implements domain.ContentRepository using SQLite.
// The payload is stored as a JSON column so the wire shape survives
// round-trips unchanged.
type ContentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new SQLite-backed ContentRepository.
func NewContentRepository(db *DB) *ContentRepository {
	return &ContentRepository{db: db.SqlDB}
}

func (r *ContentRepository) Create(ctx context.Context, item *domain.ContentItem) error {
	data, err := json.Marshal(item.Data)
	if err != nil {
		return fmt.Errorf("marshal content data: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO content_items (user_id, type, data, created_at) VALUES (?, ?, ?, ?)`,
		item.UserID, string(item.Type), string(data), now,
	)
	if err != nil {
		return fmt.Errorf("insert content item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	item.ID = id
	item.CreatedAt = now
	return nil
}

func (r *ContentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, type, data, created_at
		 FROM content_items
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query content items: %w", err)
	}
	defer rows.Close()

	var items []domain.ContentItem
	for rows.Next() {
		var item domain.ContentItem
		var ctype, data string
		if err := rows.Scan(&item.ID, &item.UserID, &ctype, &data, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		item.Type = domain.ContentType(ctype)
		if err := json.Unmarshal([]byte(data), &item.Data); err != nil {
			return nil, fmt.Errorf("unmarshal content data: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Delete removes the item in a single filtered statement so a missing id
// and another user's id are indistinguishable to the caller.
func (r *ContentRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM content_items WHERE id = ? AND user_id = ?", id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
