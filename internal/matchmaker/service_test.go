package matchmaker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ws "tarneeb/internal/websocket"
)

// stubHub records broadcasts without a real connection layer.
type stubHub struct {
	broadcasts []ws.OutgoingMessage
	recipients [][]string
}

func (h *stubHub) BroadcastToPlayers(ids []string, msg ws.OutgoingMessage) {
	h.recipients = append(h.recipients, ids)
	h.broadcasts = append(h.broadcasts, msg)
}

func TestJoin_QueuesUntilFourth(t *testing.T) {
	hub := &stubHub{}
	svc := NewService(NewMemoryRepo(), 300, hub)

	var readyRoom *Room
	svc.OnRoomReady = func(r *Room) { readyRoom = r }

	ctx := context.Background()
	for _, id := range []string{"p1", "p2", "p3"} {
		room, queued, err := svc.Join(ctx, JoinRequest{PlayerID: id, Pool: "default"})
		require.NoError(t, err)
		assert.True(t, queued)
		assert.Nil(t, room)
	}
	assert.Nil(t, readyRoom)

	room, queued, err := svc.Join(ctx, JoinRequest{PlayerID: "p4", Pool: "default"})
	require.NoError(t, err)
	assert.False(t, queued)
	require.NotNil(t, room)
	assert.Len(t, room.Players, TableSize)
	assert.Zero(t, room.Bots)

	require.NotNil(t, readyRoom)
	assert.Equal(t, room.ID, readyRoom.ID)

	require.Len(t, hub.broadcasts, 1)
	assert.Equal(t, ws.EventMatched, hub.broadcasts[0].Event)
	assert.ElementsMatch(t, room.Players, hub.recipients[0])
}

func TestJoin_PoolsAreIsolated(t *testing.T) {
	svc := NewService(NewMemoryRepo(), 300, nil)
	ctx := context.Background()

	for _, id := range []string{"a1", "a2", "a3"} {
		_, _, err := svc.Join(ctx, JoinRequest{PlayerID: id, Pool: "alpha"})
		require.NoError(t, err)
	}
	room, queued, err := svc.Join(ctx, JoinRequest{PlayerID: "b1", Pool: "beta"})
	require.NoError(t, err)
	assert.True(t, queued, "players in other pools must not fill this table")
	assert.Nil(t, room)
}

func TestJoin_SeatedPlayerRejected(t *testing.T) {
	svc := NewService(NewMemoryRepo(), 300, nil)
	ctx := context.Background()

	room, err := svc.Solo(ctx, SoloRequest{PlayerID: "p1"})
	require.NoError(t, err)
	require.NotNil(t, room)

	_, _, err = svc.Join(ctx, JoinRequest{PlayerID: "p1", Pool: "default"})
	assert.Error(t, err, "a seated player cannot queue again")

	// Releasing the room frees the seat.
	svc.Release(ctx, room)
	_, queued, err := svc.Join(ctx, JoinRequest{PlayerID: "p1", Pool: "default"})
	require.NoError(t, err)
	assert.True(t, queued)
}

func TestSolo_FillsTableWithBots(t *testing.T) {
	hub := &stubHub{}
	svc := NewService(NewMemoryRepo(), 300, hub)

	var readyRoom *Room
	svc.OnRoomReady = func(r *Room) { readyRoom = r }

	room, err := svc.Solo(context.Background(), SoloRequest{PlayerID: "p1", Difficulty: "hard"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, room.Players)
	assert.Equal(t, TableSize-1, room.Bots)
	assert.Equal(t, "hard", room.Difficulty)
	require.NotNil(t, readyRoom)
}

func TestSolo_DefaultsDifficulty(t *testing.T) {
	svc := NewService(NewMemoryRepo(), 300, nil)
	room, err := svc.Solo(context.Background(), SoloRequest{PlayerID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "medium", room.Difficulty)
}

func TestCancel_RemovesFromQueue(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, 300, nil)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		_, _, err := svc.Join(ctx, JoinRequest{PlayerID: id, Pool: "default"})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Cancel(ctx, "p2"))

	cnt, err := repo.Count(ctx, "default")
	require.NoError(t, err)
	assert.EqualValues(t, 2, cnt)

	// The fourth join now only brings the pool back to three.
	room, queued, err := svc.Join(ctx, JoinRequest{PlayerID: "p4", Pool: "default"})
	require.NoError(t, err)
	assert.True(t, queued)
	assert.Nil(t, room)
}
