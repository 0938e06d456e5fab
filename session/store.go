package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-admin/models"
	"storefront-admin/variantform"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// Store persists admin sessions. Each session carries the storefront API token
// obtained at login.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Create stores a session for the admin that expires after ttl.
func (s *Store) Create(username, role, backendToken string, ttl time.Duration) (*models.AdminSession, error) {
	session := &models.AdminSession{
		Username:     username,
		Role:         role,
		BackendToken: backendToken,
		ExpiresAt:    s.now().Add(ttl),
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Get returns a live session. Expired sessions are reported as not found.
func (s *Store) Get(id uuid.UUID) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := s.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&models.AdminSession{}).Error
}

// DeleteExpired removes every session past its expiry and returns how many
// were removed.
func (s *Store) DeleteExpired() (int64, error) {
	result := s.db.Unscoped().Where("expires_at <= ?", s.now()).Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}

// Tokens returns the bearer-token capability for the session. A session that
// has expired or been logged out yields variantform.ErrNotAuthenticated.
func (s *Store) Tokens(id uuid.UUID) variantform.TokenSource {
	return variantform.TokenFunc(func(ctx context.Context) (string, error) {
		var session models.AdminSession
		err := s.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", variantform.ErrNotAuthenticated
		}
		if err != nil {
			return "", err
		}
		if session.Expired(s.now()) {
			return "", variantform.ErrNotAuthenticated
		}
		return session.BackendToken, nil
	})
}
