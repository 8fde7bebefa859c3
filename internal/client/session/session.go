// Package session keeps the signed-in user and its inactivity deadline.
//
// The session lives in memory and in the local metadata store under a single
// key, so a restarted client resumes where it left off unless the user has
// been inactive for longer than the timeout.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/expenses/internal/common"
	"github.com/dmitrijs2005/expenses/internal/dbx"
	"github.com/dmitrijs2005/expenses/internal/logging"
)

// Key is the metadata key holding the persisted session.
const Key = "expenses_user_session"

var ErrNoSession = errors.New("no active session")

// ErrExpired is returned by Touch when the session had already timed out.
var ErrExpired = errors.New("session expired")

// record is the persisted shape: {"user":{...},"lastActive":<unix ms>}.
type record struct {
	User       *models.User `json:"user"`
	LastActive int64        `json:"lastActive"`
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the single source of truth for sign-in state. It is safe for
// concurrent use.
type Store struct {
	db      *sql.DB
	now     func() time.Time
	timeout time.Duration
	logger  logging.Logger

	mu      sync.Mutex
	current *models.Session
	stop    context.CancelFunc
}

func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:      db,
		now:     time.Now,
		timeout: common.SessionTimeout,
		logger:  logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load restores the persisted session. An absent or incomplete record means
// signed out. A record that cannot be decoded or has expired is removed.
func (s *Store) Load(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	var rec record
	found, err := metadata.NewSQLiteRepository(s.db).Load(ctx, Key, &rec)
	if errors.Is(err, metadata.ErrCorrupt) {
		s.logger.Warn(ctx, "discarding unreadable session", "error", err)
		return nil, s.remove(ctx)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if rec.User == nil || rec.LastActive == 0 {
		return nil, nil
	}

	sess := models.Session{User: *rec.User, LastActive: time.UnixMilli(rec.LastActive)}
	if sess.Expired(s.now(), s.timeout) {
		s.logger.Info(ctx, "stored session expired", "last_active", sess.LastActive)
		return nil, s.remove(ctx)
	}

	s.current = &sess
	u := sess.User
	return &u, nil
}

// User returns the signed-in user.
func (s *Store) User() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.User{}, false
	}
	return s.current.User, true
}

// Token returns the bearer token of the signed-in user, or ErrNoSession.
func (s *Store) Token() (string, error) {
	u, ok := s.User()
	if !ok {
		return "", ErrNoSession
	}
	return u.Token, nil
}

// Login replaces any current session with u, active as of now.
func (s *Store) Login(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &models.Session{User: u, LastActive: s.now()}
	return s.persist(ctx)
}

// Logout clears memory and storage and stops the expiry watcher.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logout(ctx)
}

func (s *Store) logout(ctx context.Context) error {
	s.current = nil
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	return s.remove(ctx)
}

// Touch records activity. It is a no-op while signed out. A session that has
// already timed out is signed out instead and ErrExpired is returned.
func (s *Store) Touch(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	now := s.now()
	if s.current.Expired(now, s.timeout) {
		s.logger.Info(ctx, "session expired after inactivity", "user", s.current.User.Email)
		if err := s.logout(ctx); err != nil {
			return err
		}
		return ErrExpired
	}
	s.current.LastActive = now
	return s.persist(ctx)
}

// IsExpired reports whether the current session has outlived the timeout.
// It is false while signed out.
func (s *Store) IsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current != nil && s.current.Expired(s.now(), s.timeout)
}

// CheckExpiry signs out an expired session and reports whether it did.
func (s *Store) CheckExpiry(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.Expired(s.now(), s.timeout) {
		return false, nil
	}
	s.logger.Info(ctx, "session expired after inactivity", "user", s.current.User.Email)
	return true, s.logout(ctx)
}

// StartExpiryWatcher checks for expiry every interval until the session ends
// or ctx is cancelled. onExpire runs once, outside the store lock, when the
// watcher forces a sign-out. A watcher already running is replaced.
func (s *Store) StartExpiryWatcher(ctx context.Context, interval time.Duration, onExpire func()) {
	s.mu.Lock()
	if s.stop != nil {
		s.stop()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.stop = cancel
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				expired, err := s.CheckExpiry(context.WithoutCancel(ctx))
				if err != nil {
					s.logger.Error(ctx, "failed to clear expired session", "error", err)
				}
				if expired {
					if onExpire != nil {
						onExpire()
					}
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Store) persist(ctx context.Context) error {
	rec := record{User: &s.current.User, LastActive: s.current.LastActive.UnixMilli()}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Save(ctx, Key, rec)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) remove(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, Key)
	})
}
