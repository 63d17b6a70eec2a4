package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(maxSessions int, maxAge time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(maxSessions, maxAge)
	s.now = clock.now
	return s, clock
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newTestStore(10, time.Hour)

	id, sess := s.Create()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	got, err := s.Get(id)
	require.NoError(t, err)
	require.Same(t, sess, got)

	_, ok := got.Current()
	require.False(t, ok)
}

func TestGetUnknownOrMalformedID(t *testing.T) {
	s, _ := newTestStore(10, time.Hour)

	_, err := s.Get(uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get("not-a-uuid")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionsExpireAfterIdleTime(t *testing.T) {
	s, clock := newTestStore(10, time.Hour)
	id, _ := s.Create()

	clock.advance(59 * time.Minute)
	_, err := s.Get(id)
	require.NoError(t, err)

	// Get refreshed lastSeen.
	clock.advance(59 * time.Minute)
	_, err = s.Get(id)
	require.NoError(t, err)

	clock.advance(61 * time.Minute)
	_, err = s.Get(id)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, s.Len())
}

func TestRetentionByCountDropsLeastRecentlySeen(t *testing.T) {
	s, clock := newTestStore(2, 0)

	first, _ := s.Create()
	clock.advance(time.Second)
	second, _ := s.Create()
	clock.advance(time.Second)

	_, err := s.Get(first)
	require.NoError(t, err)
	clock.advance(time.Second)

	third, _ := s.Create()
	require.Equal(t, 2, s.Len())

	_, err = s.Get(second)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(first)
	require.NoError(t, err)
	_, err = s.Get(third)
	require.NoError(t, err)
}

func TestGetOrCreate(t *testing.T) {
	s, _ := newTestStore(10, time.Hour)

	id, sess, created := s.GetOrCreate("")
	require.True(t, created)

	again, sameSess, created := s.GetOrCreate(id)
	require.False(t, created)
	require.Equal(t, id, again)
	require.Same(t, sess, sameSess)
}
