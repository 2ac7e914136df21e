// Package session holds the client's only cross-component shared mutable
// state: the access token and the cached user snapshot. It is the single
// process-wide session store with an explicit hydrate/login/logout lifecycle,
// injected into the transport as its token source.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simp-lee/forumclient/internal/domain"
)

// Persisted entry keys, mirroring the browser localStorage keys the web
// client used.
const (
	accessTokenKey = "access_token"
	cachedUserKey  = "cached_user"
)

// Entry is one persisted key/value pair of the session store.
type Entry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName keeps the storage table explicit.
func (Entry) TableName() string { return "session_entries" }

// Store is the session store. Reads hit the in-memory copy; Login, Logout,
// and Clear write through to the database. All methods are safe for
// concurrent use.
type Store struct {
	db *gorm.DB

	mu    sync.RWMutex
	token string
	user  *domain.User
}

// NewStore creates a Store backed by the given database and migrates its
// table. The store starts anonymous; call Hydrate to load persisted state.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("session db is nil")
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}
	return &Store{db: db}, nil
}

// Hydrate loads the persisted token and user into memory. A token whose JWT
// exp claim has passed is treated as absent and removed from storage, so a
// restarted client never starts with a dead session.
func (s *Store) Hydrate() error {
	var entries []Entry
	if err := s.db.Find(&entries).Error; err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var token string
	var user *domain.User
	for _, e := range entries {
		switch e.Key {
		case accessTokenKey:
			token = string(e.Value)
		case cachedUserKey:
			var u domain.User
			if err := json.Unmarshal(e.Value, &u); err == nil {
				user = &u
			}
		}
	}

	if token != "" && tokenExpired(token, time.Now()) {
		if err := s.persist("", nil); err != nil {
			return err
		}
		token = ""
		user = nil
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login stores the token and user snapshot, in memory and durably. The two
// writes happen in one transaction so a crash cannot leave a token without
// its user or vice versa.
func (s *Store) Login(token string, user domain.User) error {
	if token == "" {
		return errors.New("token is empty")
	}
	if err := s.persist(token, &user); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Logout drops the session, in memory and durably.
func (s *Store) Logout() error {
	if err := s.persist("", nil); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Token implements transport.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear implements transport.TokenSource. The transport calls it on HTTP 401;
// persistence is best effort since the caller cannot handle an error there.
func (s *Store) Clear() {
	s.mu.Lock()
	alreadyClear := s.token == "" && s.user == nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if !alreadyClear {
		_ = s.persist("", nil)
	}
}

// User returns the cached user snapshot, if any.
func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a token is currently held.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// persist writes the token and user entries in one transaction. An empty
// token deletes both entries.
func (s *Store) persist(token string, user *domain.User) error {
	err := withTx(s.db, func(tx *gorm.DB) error {
		if token == "" {
			return tx.Where("key IN ?", []string{accessTokenKey, cachedUserKey}).Delete(&Entry{}).Error
		}

		entries := []Entry{{Key: accessTokenKey, Value: []byte(token)}}
		if user != nil {
			encoded, err := json.Marshal(user)
			if err != nil {
				return fmt.Errorf("encode user: %w", err)
			}
			entries = append(entries, Entry{Key: cachedUserKey, Value: encoded})
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&entries).Error
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// tokenExpired inspects the JWT exp claim without verifying the signature.
// The client holds no server secret, so verification is impossible; only the
// timestamp matters here. Tokens that do not parse as JWTs or carry no exp
// are kept and left for the backend to reject.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// withTx executes fn within a database transaction.
// It commits on success, rolls back on error or panic.
func withTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
