// Package session holds the authenticated session: the bearer token issued
// by the profile service, its expiry, and the user identity attached to it.
// The session is persisted in the local store so it survives restarts, the
// way the mobile app keeps it in device storage.
package session

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/aulago/aulago/internal/domain"
)

// Record is the persisted session row. At most one row exists.
type Record struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"not null"`
	UserID    string
	Name      string
	Role      string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// TableName fixes the table name regardless of gorm pluralization.
func (Record) TableName() string {
	return "session"
}

// Store is the session store. It implements transport.TokenSource.
type Store struct {
	db *gorm.DB

	mu      sync.RWMutex
	current *Record
}

// NewStore migrates the session table and loads the persisted session, if
// any. An already-expired persisted session is discarded on load.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("session store db is nil")
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}

	s := &Store{db: db}

	var rec Record
	err := db.First(&rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No persisted session.
	case err != nil:
		return nil, err
	case time.Now().After(rec.ExpiresAt):
		if err := db.Delete(&rec).Error; err != nil {
			return nil, err
		}
	default:
		s.current = &rec
	}

	return s, nil
}

// Save replaces the session with the one returned by a successful login.
func (s *Store) Save(token, userID, name, role string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		ID:        1,
		Token:     token,
		UserID:    userID,
		Name:      name,
		Role:      role,
		ExpiresAt: expiresAt,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Save(&rec).Error; err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to persist session", err)
	}
	s.current = &rec
	return nil
}

// Clear removes the session (logout).
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Where("1 = 1").Delete(&Record{}).Error; err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to clear session", err)
	}
	s.current = nil
	return nil
}

// Current returns a copy of the active session record.
func (s *Store) Current() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || time.Now().After(s.current.ExpiresAt) {
		return Record{}, false
	}
	return *s.current, true
}

// Token returns the active bearer token, or domain.ErrNoSession when the
// session is missing or expired. Transport treats ErrNoSession as "send
// anonymously"; authorized endpoints then answer 401 and screens prompt for
// login.
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil || time.Now().After(s.current.ExpiresAt) {
		return "", domain.ErrNoSession
	}
	return s.current.Token, nil
}
