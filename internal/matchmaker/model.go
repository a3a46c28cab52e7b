package matchmaker

import "time"

// TableSize is fixed: Tarneeb is always four seats, two teams.
const TableSize = 4

// JoinRequest queues a player for a full-human table in a named pool.
// The player id comes from the session token, never from the body.
type JoinRequest struct {
	PlayerID string `json:"-"`
	Pool     string `json:"pool" binding:"required"`
}

// SoloRequest starts a table immediately, filling the three open seats with
// computer players at the requested difficulty.
type SoloRequest struct {
	PlayerID   string `json:"-"`
	Difficulty string `json:"difficulty"`
}

// JoinResponse reports queueing state; on a formed table it carries the room.
type JoinResponse struct {
	Queued  bool     `json:"queued"`
	RoomID  string   `json:"roomId,omitempty"`
	Players []string `json:"players,omitempty"`
	Pool    string   `json:"pool"`
}

// Room is a formed table. Human players occupy the first seats in order;
// Bots computer seats are appended after them.
type Room struct {
	ID         string
	Pool       string
	Players    []string
	Bots       int
	Difficulty string
	CreatedAt  time.Time
}
