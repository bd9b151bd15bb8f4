package ws

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

func (h *Hub) hasClient(c *Client) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.clients[c.userID][c]
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func TestHub_DeliversToRegisteredClient(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	c := NewClient(h, nil, uuid.New())
	h.Register(c)
	waitFor(t, func() bool { return h.hasClient(c) }, "client registration")

	h.Send(c.userID, []byte(`{"event":"ping"}`))

	select {
	case payload := <-c.send:
		if string(payload) != `{"event":"ping"}` {
			t.Fatalf("unexpected payload %q", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("payload never delivered")
	}
}

func TestHub_SendSkipsOtherUsers(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	target := NewClient(h, nil, uuid.New())
	other := NewClient(h, nil, uuid.New())
	h.Register(target)
	h.Register(other)
	waitFor(t, func() bool { return h.hasClient(target) && h.hasClient(other) }, "registrations")

	h.Send(target.userID, []byte("hi"))

	select {
	case <-target.send:
	case <-time.After(2 * time.Second):
		t.Fatalf("payload never delivered")
	}
	select {
	case payload := <-other.send:
		t.Fatalf("payload %q leaked to another user", payload)
	default:
	}
}

// A client that stops draining must not stall the hub. The hub drops it
// inline and keeps serving everyone else, even when the slow client's
// backlog is bigger than the unregister buffer could ever absorb.
func TestHub_SlowClientIsDroppedWithoutStallingHub(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	slow := NewClient(h, nil, uuid.New())
	healthy := NewClient(h, nil, uuid.New())
	h.Register(slow)
	h.Register(healthy)
	waitFor(t, func() bool { return h.hasClient(slow) && h.hasClient(healthy) }, "registrations")

	// Nobody reads slow.send, so every fan-out overflows it. Well past the
	// 128-slot unregister buffer to prove the hub never re-queues through it.
	for i := 0; i < 300; i++ {
		h.Send(slow.userID, []byte(fmt.Sprintf("event %d", i)))
	}
	waitFor(t, func() bool { return !h.hasClient(slow) }, "slow client removal")

	// The channel was closed on drop: draining it terminates.
	for {
		if _, ok := <-slow.send; !ok {
			break
		}
	}

	h.Send(healthy.userID, []byte("still here"))
	select {
	case payload := <-healthy.send:
		if string(payload) != "still here" {
			t.Fatalf("unexpected payload %q", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("hub stopped delivering after dropping the slow client")
	}
}

// ReadPump unregisters on exit. When the hub already dropped the client for
// being slow, that second unregister must be a no-op rather than a double
// close.
func TestHub_UnregisterAfterDropIsSafe(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	c := NewClient(h, nil, uuid.New())
	h.Register(c)
	waitFor(t, func() bool { return h.hasClient(c) }, "client registration")

	for i := 0; i < cap(c.send)+1; i++ {
		h.Send(c.userID, []byte("x"))
	}
	waitFor(t, func() bool { return !h.hasClient(c) }, "slow client removal")

	h.Unregister(c)

	alive := NewClient(h, nil, uuid.New())
	h.Register(alive)
	waitFor(t, func() bool { return h.hasClient(alive) }, "hub still processing")
}
