package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Manohar0077/guess-that-scene/internal"
)

// PostgresRepo persists finished games. Live room state never touches the
// database; this is a write-behind history of completed sessions only.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &PostgresRepo{pool: pool}, nil
}

// Migrate creates the history table if it is missing.
func (r *PostgresRepo) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_history (
			id            BIGSERIAL PRIMARY KEY,
			room_code     TEXT        NOT NULL,
			rounds_played INT         NOT NULL,
			winner        TEXT        NOT NULL,
			winner_score  INT         NOT NULL,
			scoreboard    JSONB       NOT NULL,
			finished_at   TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating game_history table: %w", err)
	}
	return nil
}

func (r *PostgresRepo) RecordGame(ctx context.Context, rec internal.GameRecord) error {
	scoreboard, err := json.Marshal(rec.Scoreboard)
	if err != nil {
		return fmt.Errorf("encoding scoreboard: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO game_history (room_code, rounds_played, winner, winner_score, scoreboard, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.RoomCode, rec.RoundsPlayed, rec.Winner, rec.WinnerScore, scoreboard, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("inserting game record: %w", err)
	}
	return nil
}

func (r *PostgresRepo) RecentGames(ctx context.Context, limit int) ([]internal.GameRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT room_code, rounds_played, winner, winner_score, scoreboard, finished_at
		 FROM game_history
		 ORDER BY finished_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying game history: %w", err)
	}
	defer rows.Close()

	var records []internal.GameRecord
	for rows.Next() {
		var rec internal.GameRecord
		var scoreboard []byte
		if err := rows.Scan(&rec.RoomCode, &rec.RoundsPlayed, &rec.Winner,
			&rec.WinnerScore, &scoreboard, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning game record: %w", err)
		}
		if err := json.Unmarshal(scoreboard, &rec.Scoreboard); err != nil {
			return nil, fmt.Errorf("decoding scoreboard: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresRepo) Close() {
	r.pool.Close()
}
