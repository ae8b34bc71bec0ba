package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Manohar0077/guess-that-scene/internal"
	"github.com/Manohar0077/guess-that-scene/internal/storage"
)

var repo *storage.PostgresRepo

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine3.22",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testusername"),
		postgres.WithPassword("testpassword"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		panic(err)
	}

	connString, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	repo, err = storage.NewPostgresRepo(ctx, connString)
	if err != nil {
		panic(err)
	}
	if err := repo.Migrate(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	// Cleanup
	repo.Close()
	postgresContainer.Terminate(ctx)
	os.Exit(code)
}

func TestPostgresRepo(t *testing.T) {
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	games := []internal.GameRecord{
		{
			RoomCode:     "AB2CD",
			RoundsPlayed: 5,
			Winner:       "Amy",
			WinnerScore:  42,
			Scoreboard:   []internal.ScoreEntry{{Name: "Amy", Score: 42}, {Name: "Ben", Score: 17}},
			FinishedAt:   base.Add(-2 * time.Hour),
		},
		{
			RoomCode:     "XY3ZW",
			RoundsPlayed: 3,
			Winner:       "Cat",
			WinnerScore:  55,
			Scoreboard:   []internal.ScoreEntry{{Name: "Cat", Score: 55}},
			FinishedAt:   base.Add(-1 * time.Hour),
		},
		{
			RoomCode:     "QR4ST",
			RoundsPlayed: 6,
			Winner:       "Ben",
			WinnerScore:  61,
			Scoreboard:   []internal.ScoreEntry{{Name: "Ben", Score: 61}, {Name: "Amy", Score: 60}},
			FinishedAt:   base,
		},
	}

	t.Run("RecordGame", func(t *testing.T) {
		for _, g := range games {
			require.NoError(t, repo.RecordGame(ctx, g))
		}
	})

	t.Run("RecentGames_NewestFirst", func(t *testing.T) {
		got, err := repo.RecentGames(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "QR4ST", got[0].RoomCode)
		assert.Equal(t, "XY3ZW", got[1].RoomCode)
		assert.Equal(t, "AB2CD", got[2].RoomCode)

		assert.Equal(t, "Ben", got[0].Winner)
		assert.Equal(t, 61, got[0].WinnerScore)
		require.Len(t, got[0].Scoreboard, 2)
		assert.Equal(t, internal.ScoreEntry{Name: "Ben", Score: 61}, got[0].Scoreboard[0])
	})

	t.Run("RecentGames_Limit", func(t *testing.T) {
		got, err := repo.RecentGames(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "QR4ST", got[0].RoomCode)
	})

	t.Run("MigrateIsIdempotent", func(t *testing.T) {
		assert.NoError(t, repo.Migrate(ctx))
	})
}
