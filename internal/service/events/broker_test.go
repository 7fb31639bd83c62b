package events

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker(buffer int) *Broker {
	return NewBroker(buffer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishFansOut(t *testing.T) {
	b := newTestBroker(4)
	first := b.Subscribe()
	second := b.Subscribe()
	defer first.Close()
	defer second.Close()

	id := b.Publish(Event{Type: TypeMembersUpdated, Data: MembersUpdated{FolderID: "0"}})
	assert.Equal(t, int64(1), id)

	for _, sub := range []*Subscription{first, second} {
		e := <-sub.C
		assert.Equal(t, int64(1), e.ID)
		assert.Equal(t, TypeMembersUpdated, e.Type)
		assert.Equal(t, MembersUpdated{FolderID: "0"}, e.Data)
	}

	assert.Equal(t, int64(2), b.Publish(Event{Type: TypeUIUpdated}))
}

func TestSlowSubscriberMissesEvents(t *testing.T) {
	b := newTestBroker(1)
	sub := b.Subscribe()
	defer sub.Close()

	b.Publish(Event{Type: TypeCollectionUpdated})
	b.Publish(Event{Type: TypeCollectionReset})

	e := <-sub.C
	assert.Equal(t, TypeCollectionUpdated, e.Type)
	select {
	case e := <-sub.C:
		t.Fatalf("unexpected event %s", e.Type)
	default:
	}
}

func TestClose(t *testing.T) {
	b := newTestBroker(0)
	sub := b.Subscribe()
	require.Equal(t, 1, b.Subscribers())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, b.Subscribers())

	_, open := <-sub.C
	assert.False(t, open)

	// Publishing with no subscribers still assigns ids
	assert.Equal(t, int64(1), b.Publish(Event{Type: TypeUIUpdated}))
}
