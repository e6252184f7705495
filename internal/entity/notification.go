package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationLike    = "LIKE"
	NotificationComment = "COMMENT"
	NotificationMessage = "MESSAGE"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	// ActorID is the user whose action triggered the notification.
	ActorID     uuid.UUID `gorm:"type:uuid;not null" json:"actorId"`
	Type        string    `gorm:"not null" json:"type"`
	ReferenceID uuid.UUID `gorm:"type:uuid;not null" json:"referenceId"`
	IsRead      bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
