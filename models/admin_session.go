package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminSession holds the storefront API bearer token of a logged-in admin.
// The browser only ever sees the session ID inside a signed dashboard token.
type AdminSession struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username     string         `gorm:"not null;index" json:"username"`
	Role         string         `gorm:"not null" json:"role"`
	BackendToken string         `gorm:"not null" json:"-"`
	ExpiresAt    time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *AdminSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the session is past its expiry at t.
func (s *AdminSession) Expired(t time.Time) bool {
	return !s.ExpiresAt.After(t)
}
