package websocket

// OutgoingMessage is the envelope pushed to clients.
type OutgoingMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// IncomingMessage is the envelope received from clients. From is stamped by
// the hub from the authenticated connection, never trusted from the payload.
type IncomingMessage struct {
	From  string      `json:"from"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client-originated event names understood by the game layer.
const (
	EventPlaceBid  = "place_bid"
	EventPlayCard  = "play_card"
	EventChat      = "chat"
	EventSyncState = "sync_state"
)

// Server-originated event names.
const (
	EventSnapshot   = "snapshot"
	EventError      = "error"
	EventMatched    = "matched"
	EventGameOver   = "game_over"
	EventPlayerLeft = "player_left"
)
