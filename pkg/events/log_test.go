package events

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushStampsIDAndTimestamp(t *testing.T) {
	log := NewLog(10)
	e := log.Push(Event{Type: KindInsight, SessionID: "s1"})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, 1, log.Len())
}

func TestRecentOldestFirst(t *testing.T) {
	log := NewLog(10)
	for i := 0; i < 5; i++ {
		log.Push(Event{Type: KindInsight, Message: fmt.Sprintf("m%d", i)})
	}

	recent := log.Recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, "m2", recent[0].Message)
	assert.Equal(t, "m4", recent[2].Message)

	assert.Len(t, log.Recent(0), 5)
	assert.Len(t, log.Recent(100), 5)
}

func TestCapDropsOldest(t *testing.T) {
	log := NewLog(200)
	for i := 0; i < 250; i++ {
		log.Push(Event{Type: KindSOS, Message: fmt.Sprintf("m%d", i)})
	}
	assert.Equal(t, 200, log.Len())

	all := log.Recent(200)
	assert.Equal(t, "m50", all[0].Message)
	assert.Equal(t, "m249", all[199].Message)
}

func TestDefaultCapacity(t *testing.T) {
	log := NewLog(0)
	for i := 0; i < 300; i++ {
		log.Push(Event{Type: KindInsight})
	}
	assert.Equal(t, 200, log.Len())
}
