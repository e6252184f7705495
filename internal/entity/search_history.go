package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchHistory keeps at most one row per (user, normalized query). The
// composite unique index backs the conflict-resolving upsert that refreshes
// UpdatedAt on a repeated search.
type SearchHistory struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_history_user_query" json:"userId"`
	Query     string    `gorm:"not null;uniqueIndex:idx_history_user_query" json:"query"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
