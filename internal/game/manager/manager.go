package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tarneeb/internal/game/ai"
	"tarneeb/internal/game/dealer"
	"tarneeb/internal/game/engine"
	"tarneeb/internal/game/table"
	"tarneeb/internal/matchmaker"
	"tarneeb/internal/storage"
	ws "tarneeb/internal/websocket"
)

// Recorder persists finished matches. Nil disables persistence.
type Recorder interface {
	SaveMatch(ctx context.Context, rec storage.MatchRecord) error
}

// Options tune the manager.
type Options struct {
	// ThinkDelay is the cosmetic pause before a computer seat's move is
	// applied. The decision itself is computed eagerly before the pause and
	// is never altered by it.
	ThinkDelay time.Duration
	// Seed overrides the deal RNG seed; zero picks the clock. Set it in
	// tests for reproducible deals.
	Seed int64
	// Engine options forwarded to every match.
	Engine engine.Options
}

var botNames = []string{"Sami", "Layla", "Omar", "Nadia", "Ziad", "Rana"}

// match pairs one engine with its mutual-exclusion boundary. Engine command
// handlers are not re-entrant safe; everything goes through mu.
type match struct {
	mu     sync.Mutex
	room   *matchmaker.Room
	eng    *engine.Engine
	humans []string // player id per seat, "" for computer seats
	wake   chan struct{}
	cancel context.CancelFunc
}

// humanIDs must be called with m.mu held.
func (m *match) humanIDs() []string {
	ids := make([]string, 0, len(m.humans))
	for _, id := range m.humans {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// seatOf finds the seat a player occupies, or -1. Call with m.mu held.
func (m *match) seatOf(playerID string) int {
	for i, id := range m.humans {
		if id != "" && id == playerID {
			return i
		}
	}
	return -1
}

// GameManager owns all running matches and routes hub traffic to them.
type GameManager struct {
	mu            sync.RWMutex
	matches       map[string]*match // roomID -> match
	playerToMatch map[string]string // playerID -> roomID

	hub      ws.HubInterface
	recorder Recorder
	opts     Options

	// OnGameOver is called once per finished match, after persistence.
	OnGameOver func(room *matchmaker.Room)
}

func NewGameManager(hub ws.HubInterface, recorder Recorder, opts Options) *GameManager {
	if opts.ThinkDelay == 0 {
		opts.ThinkDelay = 600 * time.Millisecond
	}
	return &GameManager{
		matches:       make(map[string]*match),
		playerToMatch: make(map[string]string),
		hub:           hub,
		recorder:      recorder,
		opts:          opts,
	}
}

// StartRoom builds the aggregate for a formed room, seats humans in join
// order and computer players after them, and starts the first round.
func (g *GameManager) StartRoom(room *matchmaker.Room) error {
	if len(room.Players)+room.Bots != matchmaker.TableSize {
		return fmt.Errorf("room %s seats %d players and %d bots, need %d total",
			room.ID, len(room.Players), room.Bots, matchmaker.TableSize)
	}

	var names [4]string
	var computer [4]bool
	humans := make([]string, 4)
	for i, id := range room.Players {
		names[i] = id
		humans[i] = id
	}
	for i := len(room.Players); i < 4; i++ {
		names[i] = botNames[(i-len(room.Players))%len(botNames)]
		computer[i] = true
	}

	game, err := table.NewGame(room.ID, names, computer, 0)
	if err != nil {
		return err
	}

	seed := g.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &match{room: room, humans: humans, wake: make(chan struct{}, 1)}
	pub := &matchPublisher{gm: g, m: m}
	m.eng = engine.NewEngine(game, dealer.NewDealer(seed), pub, g.opts.Engine)

	difficulty := ai.Difficulty(room.Difficulty)
	if difficulty == "" {
		difficulty = ai.Medium
	}
	for seat := 0; seat < 4; seat++ {
		if !computer[seat] {
			continue
		}
		policy, err := ai.NewPolicy(difficulty, nil)
		if err != nil {
			return err
		}
		m.eng.SetPolicy(seat, policy)
	}

	g.mu.Lock()
	if _, exists := g.matches[room.ID]; exists {
		g.mu.Unlock()
		return fmt.Errorf("match for room %s already running", room.ID)
	}
	g.matches[room.ID] = m
	for _, id := range room.Players {
		g.playerToMatch[id] = room.ID
	}
	g.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	m.mu.Lock()
	err = m.eng.Start()
	m.mu.Unlock()
	if err != nil {
		g.teardown(m)
		return err
	}

	go g.driveBots(ctx, m)
	return nil
}

// HandlePlayerMessage is the single entry point for hub traffic.
func (g *GameManager) HandlePlayerMessage(msg ws.IncomingMessage) {
	m := g.matchFor(msg.From)
	if m == nil {
		return
	}

	switch msg.Event {
	case ws.EventPlaceBid:
		var body struct {
			Bid int `json:"bid"`
		}
		if err := decodeData(msg.Data, &body); err != nil {
			return
		}
		g.command(m, msg.From, func(seat int) error {
			return m.eng.PlaceBid(seat, body.Bid)
		})

	case ws.EventPlayCard:
		var body struct {
			Suit table.Suit `json:"suit"`
			Rank table.Rank `json:"rank"`
		}
		if err := decodeData(msg.Data, &body); err != nil {
			return
		}
		g.command(m, msg.From, func(seat int) error {
			return m.eng.PlayCard(seat, table.Card{Suit: body.Suit, Rank: body.Rank})
		})

	case ws.EventChat:
		// Chat is relayed verbatim; it never reaches rule evaluation.
		m.mu.Lock()
		ids := m.humanIDs()
		m.mu.Unlock()
		g.hub.BroadcastToPlayers(ids, ws.OutgoingMessage{
			Event: ws.EventChat,
			Data:  map[string]any{"from": msg.From, "text": msg.Data},
		})

	case ws.EventSyncState:
		m.mu.Lock()
		snap := m.eng.Snapshot()
		m.mu.Unlock()
		g.hub.SendToPlayer(msg.From, ws.OutgoingMessage{Event: ws.EventSnapshot, Data: snap})
	}
}

// HandleDisconnect hands a leaver's seat to a computer policy so the other
// three can finish the match.
func (g *GameManager) HandleDisconnect(playerID string) {
	m := g.matchFor(playerID)
	if m == nil {
		return
	}
	m.mu.Lock()
	seat := m.seatOf(playerID)
	if seat < 0 {
		m.mu.Unlock()
		return
	}
	m.humans[seat] = ""
	game := m.eng.Game()
	if !game.GameOver {
		game.Seats[seat].IsComputer = true
		if policy, err := ai.NewPolicy(ai.Medium, nil); err == nil {
			m.eng.SetPolicy(seat, policy)
		}
	}
	ids := m.humanIDs()
	m.mu.Unlock()

	g.mu.Lock()
	delete(g.playerToMatch, playerID)
	g.mu.Unlock()

	g.hub.BroadcastToPlayers(ids, ws.OutgoingMessage{
		Event: ws.EventPlayerLeft,
		Data:  map[string]any{"playerId": playerID, "seat": seat},
	})
	m.nudge()
}

// command runs one player command under the match lock.
func (g *GameManager) command(m *match, playerID string, fn func(seat int) error) {
	m.mu.Lock()
	seat := m.seatOf(playerID)
	if seat < 0 {
		m.mu.Unlock()
		return
	}
	err := fn(seat)
	over := m.eng.Game().GameOver
	m.mu.Unlock()

	if err != nil {
		return // the engine already published the rejection
	}
	if over {
		g.finish(m)
		return
	}
	m.nudge()
}

// nudge wakes the bot driver without blocking.
func (m *match) nudge() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// driveBots paces computer seats: decision first, cosmetic pause second.
// Humans cannot act while a computer seat is on turn, so the decision stays
// valid across the pause.
func (g *GameManager) driveBots(ctx context.Context, m *match) {
	for {
		m.mu.Lock()
		if m.eng.Game().GameOver {
			m.mu.Unlock()
			return
		}
		if !m.eng.CurrentSeatIsComputer() {
			m.mu.Unlock()
			select {
			case <-ctx.Done():
				return
			case <-m.wake:
				continue
			}
		}
		decision, err := m.eng.ComputeDecision()
		m.mu.Unlock()
		if err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(g.opts.ThinkDelay):
		}

		m.mu.Lock()
		applyErr := m.eng.Apply(decision)
		over := m.eng.Game().GameOver
		m.mu.Unlock()
		if applyErr != nil {
			return
		}
		if over {
			g.finish(m)
			return
		}
	}
}

// finish records the outcome, tells the table and releases the match.
func (g *GameManager) finish(m *match) {
	m.mu.Lock()
	snap := m.eng.Snapshot()
	ids := m.humanIDs()
	m.mu.Unlock()

	if g.recorder != nil {
		rec := storage.MatchRecord{
			GameID:      snap.GameID,
			WinningTeam: snap.WinningTeam,
			Team1Score:  snap.Team1Score,
			Team2Score:  snap.Team2Score,
			Rounds:      snap.Round,
			FinishedAt:  time.Now(),
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = g.recorder.SaveMatch(ctx, rec)
		cancel()
	}

	g.hub.BroadcastToPlayers(ids, ws.OutgoingMessage{
		Event: ws.EventGameOver,
		Data: map[string]any{
			"winningTeam": snap.WinningTeam,
			"team1Score":  snap.Team1Score,
			"team2Score":  snap.Team2Score,
			"rounds":      snap.Round,
		},
	})

	if g.OnGameOver != nil {
		g.OnGameOver(m.room)
	}
	g.teardown(m)
}

func (g *GameManager) teardown(m *match) {
	if m.cancel != nil {
		m.cancel()
	}
	g.mu.Lock()
	delete(g.matches, m.room.ID)
	for _, id := range m.humans {
		if id != "" {
			delete(g.playerToMatch, id)
		}
	}
	g.mu.Unlock()
}

func (g *GameManager) matchFor(playerID string) *match {
	g.mu.RLock()
	defer g.mu.RUnlock()
	roomID, ok := g.playerToMatch[playerID]
	if !ok {
		return nil
	}
	return g.matches[roomID]
}

// matchPublisher adapts the hub to the engine's publisher. Snapshots go to
// every human at the table; rejections go only to the offending seat.
type matchPublisher struct {
	gm *GameManager
	m  *match
}

func (p *matchPublisher) PublishSnapshot(snap table.Snapshot) {
	p.gm.hub.BroadcastToPlayers(p.m.humanIDs(), ws.OutgoingMessage{
		Event: ws.EventSnapshot,
		Data:  snap,
	})
}

func (p *matchPublisher) PublishError(seat int, err error) {
	if seat < 0 || seat > 3 {
		return
	}
	id := p.m.humans[seat]
	if id == "" {
		return
	}
	p.gm.hub.SendToPlayer(id, ws.OutgoingMessage{
		Event: ws.EventError,
		Data:  map[string]any{"seat": seat, "message": err.Error()},
	})
}

// decodeData converts a decoded-JSON payload into a typed struct.
func decodeData(data interface{}, out interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
