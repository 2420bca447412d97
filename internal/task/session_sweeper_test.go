package task

import (
	"context"
	"testing"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepFinalizesOnlyIdleSessions(t *testing.T) {
	store := session.NewMemoryStore()

	idle := session.New("en-IN")
	idle.StartedAt = time.Now().UTC().Add(-2 * time.Hour)
	store.Put(idle)

	fresh := session.New("en-IN")
	fresh.AddTurn("user", "still here")
	store.Put(fresh)

	finalized := []string{}
	sweepIdleSessions(store, 30*time.Minute, func(ctx context.Context, s *session.Session) {
		finalized = append(finalized, s.ID)
		store.Delete(s.ID)
	})

	require.Len(t, finalized, 1)
	assert.Equal(t, idle.ID, finalized[0])

	_, ok := store.Get(fresh.ID)
	assert.True(t, ok)
	_, ok = store.Get(idle.ID)
	assert.False(t, ok)
}

func TestSweepSkipsSessionTouchedBeforeLock(t *testing.T) {
	store := session.NewMemoryStore()

	s := session.New("en-IN")
	s.StartedAt = time.Now().UTC().Add(-2 * time.Hour)
	store.Put(s)
	// Activity arrives after the scan would have selected the session
	s.AddTurn("user", "back again")

	called := false
	sweepIdleSessions(store, 30*time.Minute, func(ctx context.Context, sess *session.Session) {
		called = true
	})
	assert.False(t, called)
}

func TestSweeperStartsAndStops(t *testing.T) {
	store := session.NewMemoryStore()
	c := StartSessionSweeper(store, 30*time.Minute, func(ctx context.Context, s *session.Session) {})
	require.NotNil(t, c)
	ctx := c.Stop()
	<-ctx.Done()
}
