package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/teambuilder-backend/internal/logger"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub(ctx)
	h.log = logger.Discard()
	go h.Run()
	return h
}

func TestHub_NotifyOwnerReachesOnlyOwnerClients(t *testing.T) {
	h := newTestHub(t)
	alice := NewClient(nil, h, "alice")
	bob := NewClient(nil, h, "bob")
	h.Register(alice)
	h.Register(bob)
	require.Eventually(t, func() bool { return h.Connections("alice") == 1 && h.Connections("bob") == 1 }, time.Second, 5*time.Millisecond)

	h.NotifyOwner("alice", "team_saved", map[string]string{"id": "t1"})

	select {
	case raw := <-alice.send:
		var msg struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "team_saved", msg.Type)
		assert.Equal(t, "t1", msg.Data["id"])
	case <-time.After(time.Second):
		t.Fatal("сообщение не доставлено")
	}

	select {
	case <-bob.send:
		t.Fatal("чужой клиент получил событие")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHub_Unregister(t *testing.T) {
	h := newTestHub(t)
	c := NewClient(nil, h, "alice")
	h.Register(c)
	require.Eventually(t, func() bool { return h.Connections("alice") == 1 }, time.Second, 5*time.Millisecond)

	h.Unregister(c)
	assert.Eventually(t, func() bool { return h.Connections("alice") == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StoppedDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		h.Register(NewClient(nil, h, "alice"))
		for i := 0; i < 100; i++ {
			h.NotifyOwner("alice", "team_deleted", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("хаб заблокировал вызывающего")
	}
}

func TestClient_EnqueueDropsWhenFull(t *testing.T) {
	h := newTestHub(t)
	c := NewClient(nil, h, "alice")

	for i := 0; i < cap(c.send); i++ {
		require.True(t, c.enqueue([]byte("x")))
	}
	assert.False(t, c.enqueue([]byte("x")))
}
