package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEvent struct {
	name string
	at   time.Time
}

func (e stubEvent) EventName() string     { return e.name }
func (e stubEvent) OccurredAt() time.Time { return e.at }

func TestEventLog(t *testing.T) {
	now := time.Now().UTC()

	t.Run("drain returns events in insertion order and empties the log", func(t *testing.T) {
		var log EventLog
		log.Record(stubEvent{name: "first", at: now})
		log.Record(stubEvent{name: "second", at: now})
		require.Equal(t, 2, log.Len())

		drained := log.Drain()
		require.Len(t, drained, 2)
		assert.Equal(t, "first", drained[0].EventName())
		assert.Equal(t, "second", drained[1].EventName())
		assert.Equal(t, 0, log.Len())
		assert.Empty(t, log.Drain())
	})

	t.Run("events returns a copy without draining", func(t *testing.T) {
		var log EventLog
		log.Record(stubEvent{name: "only", at: now})

		peeked := log.Events()
		require.Len(t, peeked, 1)
		assert.Equal(t, 1, log.Len())

		peeked[0] = stubEvent{name: "mutated", at: now}
		assert.Equal(t, "only", log.Events()[0].EventName())
	})

	t.Run("clear drops pending events", func(t *testing.T) {
		var log EventLog
		log.Record(stubEvent{name: "gone", at: now})
		log.Clear()
		assert.Equal(t, 0, log.Len())
	})
}
