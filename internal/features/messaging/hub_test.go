package messaging

import (
	"errors"
	"sync"
	"testing"
	"time"

	"kliernav-crm/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu       sync.Mutex
	written  []models.DirectMessage
	writeErr error
	unblock  chan struct{}
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	if c.unblock != nil {
		<-c.unblock
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	if msg, ok := v.(models.DirectMessage); ok {
		c.written = append(c.written, msg)
	}
	return nil
}

func (c *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) messages() []models.DirectMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.DirectMessage(nil), c.written...)
}

func TestHubBroadcast(t *testing.T) {
	t.Run("reaches every subscriber of the conversation and no one else", func(t *testing.T) {
		hub := NewHub(zap.NewNop())
		a, b, other := &fakeConn{}, &fakeConn{}, &fakeConn{}
		hub.Subscribe("l1", a)
		hub.Subscribe("l1", b)
		hub.Subscribe("l2", other)

		hub.Broadcast("l1", models.DirectMessage{ID: "m_x", Text: "hola"})

		require.Len(t, a.messages(), 1)
		require.Len(t, b.messages(), 1)
		assert.Equal(t, "m_x", a.messages()[0].ID)
		assert.Empty(t, other.messages())
	})

	t.Run("a stalled client does not delay other conversations", func(t *testing.T) {
		hub := NewHub(zap.NewNop())
		stalled := &fakeConn{unblock: make(chan struct{})}
		fast := &fakeConn{}
		hub.Subscribe("l1", stalled)
		hub.Subscribe("l2", fast)

		go hub.Broadcast("l1", models.DirectMessage{ID: "m_slow"})

		done := make(chan struct{})
		go func() {
			hub.Broadcast("l2", models.DirectMessage{ID: "m_fast"})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("broadcast to an unrelated conversation blocked behind a stalled client")
		}
		require.Len(t, fast.messages(), 1)

		close(stalled.unblock)
	})

	t.Run("failed writes drop and close the client", func(t *testing.T) {
		hub := NewHub(zap.NewNop())
		broken := &fakeConn{writeErr: errors.New("connection reset")}
		hub.Subscribe("l1", broken)

		hub.Broadcast("l1", models.DirectMessage{ID: "m_y"})

		assert.True(t, broken.closed)
		hub.mu.Lock()
		_, stillSubscribed := hub.clients["l1"]
		hub.mu.Unlock()
		assert.False(t, stillSubscribed)
	})
}
