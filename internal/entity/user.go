package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName  string    `gorm:"not null" json:"displayName"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	Role         string    `gorm:"not null;default:user" json:"role,omitempty"`
	IsSuspended  bool      `gorm:"not null;default:false" json:"isSuspended"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the subset of User that is safe to show to other users.
// Search results and message joins must never carry credential fields.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, DisplayName: u.DisplayName, Avatar: u.Avatar}
}
