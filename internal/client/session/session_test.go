package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/client"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stored(t *testing.T, db *sql.DB) []byte {
	t.Helper()
	var b []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, Key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return b
}

func put(t *testing.T, db *sql.DB, raw string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, Key, []byte(raw))
	require.NoError(t, err)
}

var alice = models.User{Name: "Alice", Email: "alice@example.com", Token: "tok"}

func TestLoginPersistsAndLoadRestores(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}

	s := NewStore(db, WithClock(clock.Now))
	require.NoError(t, s.Login(ctx, alice))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(stored(t, db), &rec))
	assert.Equal(t, float64(clock.Now().UnixMilli()), rec["lastActive"])
	assert.Equal(t, "tok", rec["user"].(map[string]any)["token"])

	clock.Advance(23 * time.Hour)
	restored := NewStore(db, WithClock(clock.Now))
	u, err := restored.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, alice, *u)

	token, err := restored.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestLoad(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fresh := now.Add(-time.Hour).UnixMilli()
	stale := now.Add(-25 * time.Hour).UnixMilli()

	tests := []struct {
		name       string
		raw        string
		wantUser   bool
		wantStored bool
	}{
		{name: "absent", raw: "", wantUser: false, wantStored: false},
		{name: "valid", raw: `{"user":{"name":"A","token":"t"},"lastActive":` + itoa(fresh) + `}`, wantUser: true, wantStored: true},
		{name: "malformed json is cleared", raw: `{not json`, wantUser: false, wantStored: false},
		{name: "missing user is kept", raw: `{"lastActive":` + itoa(fresh) + `}`, wantUser: false, wantStored: true},
		{name: "missing timestamp is kept", raw: `{"user":{"name":"A","token":"t"}}`, wantUser: false, wantStored: true},
		{name: "expired is cleared", raw: `{"user":{"name":"A","token":"t"},"lastActive":` + itoa(stale) + `}`, wantUser: false, wantStored: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db := newDB(t)
			if tt.raw != "" {
				put(t, db, tt.raw)
			}

			s := NewStore(db, WithClock(func() time.Time { return now }))
			u, err := s.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, tt.wantUser, u != nil)
			_, signedIn := s.User()
			assert.Equal(t, tt.wantUser, signedIn)
			assert.Equal(t, tt.wantStored, stored(t, db) != nil)
		})
	}
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestTouchExtendsSession(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(db, WithClock(clock.Now))

	require.NoError(t, s.Touch(ctx), "touch while signed out is a no-op")
	assert.Nil(t, stored(t, db))

	require.NoError(t, s.Login(ctx, alice))
	clock.Advance(20 * time.Hour)
	require.NoError(t, s.Touch(ctx))
	clock.Advance(20 * time.Hour)

	assert.False(t, s.IsExpired())

	clock.Advance(5 * time.Hour)
	assert.True(t, s.IsExpired())
}

func TestTouchSignsOutExpiredSession(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(db, WithClock(clock.Now))

	require.NoError(t, s.Login(ctx, alice))
	clock.Advance(25 * time.Hour)
	require.True(t, s.IsExpired())

	err := s.Touch(ctx)
	assert.ErrorIs(t, err, ErrExpired)
	_, ok := s.User()
	assert.False(t, ok)
	assert.False(t, s.IsExpired())
	assert.Nil(t, stored(t, db))

	expired, err := s.CheckExpiry(ctx)
	require.NoError(t, err)
	assert.False(t, expired, "already signed out")
	require.NoError(t, s.Touch(ctx))
}

func TestCheckExpiry(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(db, WithClock(clock.Now), WithTimeout(time.Minute))

	expired, err := s.CheckExpiry(ctx)
	require.NoError(t, err)
	assert.False(t, expired)

	require.NoError(t, s.Login(ctx, alice))
	clock.Advance(time.Minute)
	expired, err = s.CheckExpiry(ctx)
	require.NoError(t, err)
	assert.False(t, expired, "exactly at the timeout is still active")

	clock.Advance(time.Millisecond)
	expired, err = s.CheckExpiry(ctx)
	require.NoError(t, err)
	assert.True(t, expired)

	_, ok := s.User()
	assert.False(t, ok)
	assert.Nil(t, stored(t, db))
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	s := NewStore(db)

	require.NoError(t, s.Login(ctx, alice))
	require.NoError(t, s.Logout(ctx))

	_, ok := s.User()
	assert.False(t, ok)
	assert.Nil(t, stored(t, db))

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestExpiryWatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db := newDB(t)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(db, WithClock(clock.Now), WithTimeout(time.Hour))
	require.NoError(t, s.Login(ctx, alice))

	expired := make(chan struct{})
	s.StartExpiryWatcher(ctx, 5*time.Millisecond, func() { close(expired) })

	clock.Advance(2 * time.Hour)

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not sign out the expired session")
	}

	_, ok := s.User()
	assert.False(t, ok)
}

func TestExpiryWatcher_StoppedByLogout(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	clock := &fakeClock{t: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	s := NewStore(db, WithClock(clock.Now), WithTimeout(time.Hour))
	require.NoError(t, s.Login(ctx, alice))

	called := make(chan struct{}, 1)
	s.StartExpiryWatcher(ctx, 5*time.Millisecond, func() { called <- struct{}{} })
	require.NoError(t, s.Logout(ctx))

	require.NoError(t, s.Login(ctx, alice))
	clock.Advance(2 * time.Hour)
	time.Sleep(30 * time.Millisecond)

	select {
	case <-called:
		t.Fatal("stopped watcher must not fire")
	default:
	}
	assert.True(t, s.IsExpired())
}
