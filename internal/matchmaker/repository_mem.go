package matchmaker

import (
	"context"
	"math/rand"
	"sync"
)

// memRepo is the in-process pool, used in tests and single-node setups.
// TTLs are ignored here.
type memRepo struct {
	mu      sync.Mutex
	pools   map[string]map[string]struct{}
	players map[string]string // playerID -> pool
	rooms   map[string]string // playerID -> roomID
}

func NewMemoryRepo() Repo {
	return &memRepo{
		pools:   make(map[string]map[string]struct{}),
		players: make(map[string]string),
		rooms:   make(map[string]string),
	}
}

func (m *memRepo) Enqueue(ctx context.Context, pool, playerID string, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pools[pool]; !ok {
		m.pools[pool] = make(map[string]struct{})
	}
	m.pools[pool][playerID] = struct{}{}
	m.players[playerID] = pool
	return nil
}

func (m *memRepo) PopNRandom(ctx context.Context, pool string, n int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.pools[pool]
	if !ok || len(s) < n {
		return nil, nil
	}
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	chosen := ids[:n]
	for _, id := range chosen {
		delete(s, id)
		delete(m.players, id)
	}
	if len(s) == 0 {
		delete(m.pools, pool)
	}
	return chosen, nil
}

func (m *memRepo) Remove(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pool, ok := m.players[playerID]
	if !ok {
		return nil
	}
	if s, ok := m.pools[pool]; ok {
		delete(s, playerID)
		if len(s) == 0 {
			delete(m.pools, pool)
		}
	}
	delete(m.players, playerID)
	return nil
}

func (m *memRepo) Count(ctx context.Context, pool string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.pools[pool])), nil
}

func (m *memRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range room.Players {
		m.rooms[id] = room.ID
	}
	return nil
}

func (m *memRepo) GetPlayerRoom(ctx context.Context, playerID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[playerID], nil
}

func (m *memRepo) ClearPlayerRoom(ctx context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, playerID)
	return nil
}
