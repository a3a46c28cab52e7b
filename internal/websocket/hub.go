package websocket

import (
	"sync"
)

// HubInterface is what the game layer needs from the connection hub.
type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	SendToPlayer(id string, msg OutgoingMessage)
	Close()
}

// Hub owns all live connections, keyed by player id. All map access happens
// on the Run goroutine; callers talk to it through channels.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage

	// OnIncoming receives every client message; the game manager hangs off
	// this. Called on the hub goroutine.
	OnIncoming func(IncomingMessage)
	// OnDisconnect fires when a client drops.
	OnDisconnect func(playerID string)

	quit     chan struct{}
	quitOnce sync.Once
}

type broadcastReq struct {
	ids []string
	msg OutgoingMessage
}

type sendReq struct {
	id  string
	msg OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq, 16),
		sendOne:    make(chan sendReq, 16),
		incoming:   make(chan IncomingMessage, 32),
		quit:       make(chan struct{}),
	}
}

// Run processes hub traffic until Close. Must run on its own goroutine
// before any client connects.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if old, ok := h.clients[c.PlayerID]; ok {
				close(old.Send)
			}
			h.clients[c.PlayerID] = c

		case c := <-h.unregister:
			if cur, ok := h.clients[c.PlayerID]; ok && cur == c {
				delete(h.clients, c.PlayerID)
				close(c.Send)
				if h.OnDisconnect != nil {
					h.OnDisconnect(c.PlayerID)
				}
			}

		case req := <-h.broadcast:
			for _, id := range req.ids {
				h.push(id, req.msg)
			}

		case req := <-h.sendOne:
			h.push(req.id, req.msg)

		case msg := <-h.incoming:
			if h.OnIncoming != nil {
				h.OnIncoming(msg)
			}

		case <-h.quit:
			for _, c := range h.clients {
				close(c.Send)
			}
			h.clients = make(map[string]*Client)
			return
		}
	}
}

// push delivers without blocking the hub loop; a client with a full send
// buffer drops the message rather than stalling everyone.
func (h *Hub) push(id string, msg OutgoingMessage) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	select {
	case c.Send <- msg:
	default:
	}
}

func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	select {
	case h.broadcast <- broadcastReq{ids: ids, msg: msg}:
	case <-h.quit:
	}
}

func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	select {
	case h.sendOne <- sendReq{id: id, msg: msg}:
	case <-h.quit:
	}
}

func (h *Hub) Close() {
	h.quitOnce.Do(func() { close(h.quit) })
}
