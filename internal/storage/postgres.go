package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// MatchRecord is the final outcome of one match, persisted at game end.
// It is derived from the published snapshot only.
type MatchRecord struct {
	GameID      string
	WinningTeam int
	Team1Score  int
	Team2Score  int
	Rounds      int
	FinishedAt  time.Time
}

// MatchStore writes match history to postgres.
type MatchStore struct {
	db *sql.DB
}

func NewMatchStore(dsn string) (*MatchStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &MatchStore{db: db}, nil
}

// SaveMatch inserts one finished match.
func (s *MatchStore) SaveMatch(ctx context.Context, rec MatchRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_history (game_id, winning_team, team1_score, team2_score, rounds, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.GameID, rec.WinningTeam, rec.Team1Score, rec.Team2Score, rec.Rounds, rec.FinishedAt,
	)
	return err
}

func (s *MatchStore) Close() error {
	return s.db.Close()
}
