package websocket

import (
	"testing"
	"time"
)

func registeredClient(h *Hub, id string) *Client {
	c := &Client{PlayerID: id, Send: make(chan OutgoingMessage, 8), Hub: h}
	h.register <- c
	return c
}

func recv(t *testing.T, c *Client) OutgoingMessage {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatalf("no message delivered to %s", c.PlayerID)
		return OutgoingMessage{}
	}
}

func TestHub_BroadcastReachesOnlyNamedPlayers(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	a := registeredClient(h, "a")
	b := registeredClient(h, "b")
	c := registeredClient(h, "c")

	h.BroadcastToPlayers([]string{"a", "c"}, OutgoingMessage{Event: "snapshot"})

	if msg := recv(t, a); msg.Event != "snapshot" {
		t.Fatalf("unexpected event %q", msg.Event)
	}
	if msg := recv(t, c); msg.Event != "snapshot" {
		t.Fatalf("unexpected event %q", msg.Event)
	}
	select {
	case msg := <-b.Send:
		t.Fatalf("b should not receive %q", msg.Event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_SendToUnknownPlayerIsDropped(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	// Must not block or panic.
	h.SendToPlayer("nobody", OutgoingMessage{Event: "error"})
	h.BroadcastToPlayers([]string{"nobody"}, OutgoingMessage{Event: "snapshot"})
}

func TestHub_IncomingDispatchedWithHookAttached(t *testing.T) {
	h := NewHub()
	got := make(chan IncomingMessage, 1)
	h.OnIncoming = func(msg IncomingMessage) { got <- msg }
	go h.Run()
	defer h.Close()

	h.incoming <- IncomingMessage{From: "a", Event: EventPlaceBid}

	select {
	case msg := <-got:
		if msg.From != "a" || msg.Event != EventPlaceBid {
			t.Fatalf("unexpected message %+v", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("OnIncoming never fired")
	}
}

func TestHub_ReconnectReplacesOldClient(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	old := registeredClient(h, "a")
	fresh := registeredClient(h, "a")

	h.SendToPlayer("a", OutgoingMessage{Event: "snapshot"})
	if msg := recv(t, fresh); msg.Event != "snapshot" {
		t.Fatalf("unexpected event %q", msg.Event)
	}

	// The replaced connection's channel is closed, not fed.
	select {
	case _, ok := <-old.Send:
		if ok {
			t.Fatalf("stale client should not receive messages")
		}
	case <-time.After(time.Second):
		t.Fatalf("stale client channel never closed")
	}
}

func TestHub_DisconnectHook(t *testing.T) {
	h := NewHub()
	gone := make(chan string, 1)
	h.OnDisconnect = func(id string) { gone <- id }
	go h.Run()
	defer h.Close()

	c := registeredClient(h, "a")
	h.unregister <- c

	select {
	case id := <-gone:
		if id != "a" {
			t.Fatalf("unexpected id %q", id)
		}
	case <-time.After(time.Second):
		t.Fatalf("OnDisconnect never fired")
	}
}
