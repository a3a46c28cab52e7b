package matchmaker

import "context"

// Repo abstracts the queueing pool.
type Repo interface {
	// Enqueue adds a player to a pool. The TTL bounds how long a stale entry
	// may linger.
	Enqueue(ctx context.Context, pool, playerID string, ttlSeconds int) error
	// PopNRandom atomically removes and returns up to n random players from
	// the pool.
	PopNRandom(ctx context.Context, pool string, n int) ([]string, error)
	// Remove takes a player out of whatever pool they queued in.
	Remove(ctx context.Context, playerID string) error
	// Count reports the pool's current size.
	Count(ctx context.Context, pool string) (int64, error)
}

// RoomStore is an optional extension for repos that can persist formed rooms
// and the player→room index used to block double matching.
type RoomStore interface {
	SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error
	GetPlayerRoom(ctx context.Context, playerID string) (string, error)
	ClearPlayerRoom(ctx context.Context, playerID string) error
}
