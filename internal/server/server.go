package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Manohar0077/guess-that-scene/internal"
	"github.com/Manohar0077/guess-that-scene/internal/game"
)

// GameHistory reads back finished games for the history route.
type GameHistory interface {
	RecentGames(ctx context.Context, limit int) ([]internal.GameRecord, error)
}

type Server struct {
	port    int
	game    *game.Handler
	history GameHistory
}

// NewServer builds the HTTP server around the game handler. history may be
// nil; the history route is only registered when a store is configured.
func NewServer(port int, gameHandler *game.Handler, history GameHistory) *http.Server {
	s := &Server{
		port:    port,
		game:    gameHandler,
		history: history,
	}

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.RegisterRoutes(),
		// No Read/WriteTimeout: deadlines set here would outlive the upgrade
		// and kill long-held websocket connections.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
