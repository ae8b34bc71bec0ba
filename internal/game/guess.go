package game

import (
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Manohar0077/guess-that-scene/internal"
)

// HandleGuess appends a chat entry for the guess and, on the first correct
// answer of the round, resolves it. The winner guard under room.Mu is what
// makes "first processed wins" hold even when two correct guesses land
// back to back; client send order never matters.
func (h *Handler) HandleGuess(player *internal.Player, text string) {
	if player == nil {
		return
	}
	room := player.Room
	if room == nil {
		return
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	room.Mu.Lock()
	if room.State != internal.StatePlaying || room.RoundWinner != "" {
		room.Mu.Unlock()
		return
	}

	entry := internal.ChatEntry{
		ID:         uuid.NewString(),
		PlayerName: player.Name,
		Text:       trimmed,
		Timestamp:  time.Now().UnixMilli(),
	}

	photo := room.Photos[room.CurrentRound]
	var won internal.Message[internal.RoundWonData]
	hasWon := strings.ToLower(trimmed) == photo.Answer

	if hasWon {
		entry.IsCorrect = true
		room.RoundWinner = player.Name
		cancelRoundTimersLocked(room)

		points := CalculateGuessPoints(time.Since(room.RoundStartTime))
		player.Score += points

		won = internal.Message[internal.RoundWonData]{
			Type: "round_won",
			Data: internal.RoundWonData{
				Winner:     player.Name,
				Answer:     photo.Answer,
				Points:     points,
				PhotoSrc:   photo.Src,
				Scoreboard: scoreboardLocked(room),
			},
		}
	}

	room.Messages = append(room.Messages, entry)
	code := room.Code
	room.Mu.Unlock()

	if hasWon {
		log.Printf("[HandleGuess] Room %s: %s guessed %q correctly for %d points",
			code, player.Name, trimmed, won.Data.Points)
		SafeBroadcastToRoom(room, won)
		h.advanceLater(room, internal.PostWinDelay)
	}

	SafeBroadcastToRoom(room, internal.Message[internal.ChatData]{
		Type: "chat",
		Data: internal.ChatData{Message: entry},
	})
}

// CalculateGuessPoints rewards speed: 20 points at the intercept, dropping
// one per elapsed second, floored at 1.
func CalculateGuessPoints(elapsed time.Duration) int {
	points := int(math.Round(20 - elapsed.Seconds()))
	if points < 1 {
		points = 1
	}
	return points
}
