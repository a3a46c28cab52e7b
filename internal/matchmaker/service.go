package matchmaker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	ws "tarneeb/internal/websocket"
)

// HubBroadcaster is the slice of the hub the matchmaker needs.
type HubBroadcaster interface {
	BroadcastToPlayers(ids []string, msg ws.OutgoingMessage)
}

// Service forms four-seat tables out of queued players, or immediately when
// a player asks for a solo table against computer seats.
type Service struct {
	repo      Repo
	playerTTL int // seconds; bounds stale queue entries
	hub       HubBroadcaster

	// OnRoomReady hands a formed table to the game layer.
	OnRoomReady func(*Room)
}

func NewService(repo Repo, playerTTLSeconds int, hub HubBroadcaster) *Service {
	return &Service{repo: repo, playerTTL: playerTTLSeconds, hub: hub}
}

// Join queues the player and forms a table as soon as the pool holds four.
// Returns (room, queued, err); room is nil while waiting.
func (s *Service) Join(ctx context.Context, req JoinRequest) (*Room, bool, error) {
	if err := s.ensureNotSeated(ctx, req.PlayerID); err != nil {
		return nil, false, err
	}
	if err := s.repo.Enqueue(ctx, req.Pool, req.PlayerID, s.playerTTL); err != nil {
		return nil, false, err
	}
	cnt, err := s.repo.Count(ctx, req.Pool)
	if err != nil {
		return nil, false, err
	}
	if cnt < TableSize {
		return nil, true, nil
	}
	ids, err := s.repo.PopNRandom(ctx, req.Pool, TableSize)
	if err != nil {
		return nil, false, err
	}
	if len(ids) < TableSize {
		// Lost the race with a concurrent join; stay queued.
		return nil, true, nil
	}
	room := &Room{
		ID:        uuid.NewString(),
		Pool:      req.Pool,
		Players:   ids,
		CreatedAt: time.Now(),
	}
	s.ready(ctx, room)
	return room, false, nil
}

// Solo forms a table at once: the requesting player plus three computer
// seats at the given difficulty.
func (s *Service) Solo(ctx context.Context, req SoloRequest) (*Room, error) {
	if err := s.ensureNotSeated(ctx, req.PlayerID); err != nil {
		return nil, err
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	room := &Room{
		ID:         uuid.NewString(),
		Pool:       "solo",
		Players:    []string{req.PlayerID},
		Bots:       TableSize - 1,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}
	s.ready(ctx, room)
	return room, nil
}

// Cancel removes a waiting player from the queue.
func (s *Service) Cancel(ctx context.Context, playerID string) error {
	return s.repo.Remove(ctx, playerID)
}

// Release frees the players of a finished room for new matches.
func (s *Service) Release(ctx context.Context, room *Room) {
	store, ok := s.repo.(RoomStore)
	if !ok {
		return
	}
	for _, id := range room.Players {
		_ = store.ClearPlayerRoom(ctx, id)
	}
}

func (s *Service) ensureNotSeated(ctx context.Context, playerID string) error {
	store, ok := s.repo.(RoomStore)
	if !ok {
		return nil
	}
	roomID, _ := store.GetPlayerRoom(ctx, playerID)
	if roomID != "" {
		return fmt.Errorf("player %s already in room %s", playerID, roomID)
	}
	return nil
}

func (s *Service) ready(ctx context.Context, room *Room) {
	if store, ok := s.repo.(RoomStore); ok {
		_ = store.SaveRoom(ctx, room, s.playerTTL)
	}
	if s.hub != nil {
		s.hub.BroadcastToPlayers(room.Players, ws.OutgoingMessage{
			Event: ws.EventMatched,
			Data: map[string]any{
				"roomId":  room.ID,
				"pool":    room.Pool,
				"players": room.Players,
				"bots":    room.Bots,
			},
		})
	}
	if s.OnRoomReady != nil {
		s.OnRoomReady(room)
	}
}
