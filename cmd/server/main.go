package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Manohar0077/guess-that-scene/internal/game"
	"github.com/Manohar0077/guess-that-scene/internal/photos"
	"github.com/Manohar0077/guess-that-scene/internal/server"
	"github.com/Manohar0077/guess-that-scene/internal/storage"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	port := 8080
	if raw := os.Getenv("PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("Invalid PORT %q: %v", raw, err)
		}
		port = parsed
	}

	photosDir := os.Getenv("PHOTOS_DIR")
	if photosDir == "" {
		photosDir = "./photos"
	}
	catalog := photos.NewCatalog(photosDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var history *storage.PostgresRepo
	var gameHistory game.HistoryRecorder
	var readHistory server.GameHistory
	if connString := os.Getenv("DATABASE_URL"); connString != "" {
		repo, err := storage.NewPostgresRepo(ctx, connString)
		if err != nil {
			log.Fatalf("Connecting to game history database: %v", err)
		}
		if err := repo.Migrate(ctx); err != nil {
			log.Fatalf("Migrating game history database: %v", err)
		}
		history = repo
		gameHistory = repo
		readHistory = repo
		defer history.Close()
		log.Println("Game history store enabled")
	}

	handler := game.NewHandler(game.NewStore(), catalog, gameHistory)
	srv := server.NewServer(port, handler, readHistory)

	go func() {
		log.Printf("guess-that-scene server listening on :%d (photos: %s)", port, photosDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
