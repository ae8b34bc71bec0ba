package game

import (
	"context"
	"log"
	"math/rand"
	"slices"
	"time"

	"github.com/Manohar0077/guess-that-scene/internal"
)

// generateCircle picks a reveal region away from the photo edges, small
// enough that a single circle rarely gives the answer away.
func generateCircle() internal.Circle {
	return internal.Circle{
		X:      0.12 + rand.Float64()*0.76,
		Y:      0.12 + rand.Float64()*0.76,
		Radius: 0.025 + rand.Float64()*0.02,
	}
}

// startRound opens the current round: resets per-round state, seeds the first
// reveal circle, arms the three round timers, and announces round_start.
func (h *Handler) startRound(room *internal.Room) {
	room.Mu.Lock()
	if room.Closed || room.State != internal.StatePlaying {
		room.Mu.Unlock()
		return
	}

	cancelRoundTimersLocked(room)

	now := time.Now()
	room.Circles = []internal.Circle{generateCircle()}
	room.Messages = nil
	room.RoundWinner = ""
	room.RoundStartTime = now
	room.RoundEndsAt = now.Add(internal.RoundDuration)

	ctx, cancel := context.WithCancel(context.Background())
	room.Timers = &internal.RoundTimers{Context: ctx, Cancel: cancel}

	photo := room.Photos[room.CurrentRound]
	start := internal.RoundStartData{
		RoundIndex:  room.CurrentRound,
		TotalRounds: room.TotalRounds,
		PhotoSrc:    photo.Src,
		Circles:     slices.Clone(room.Circles),
		Scoreboard:  scoreboardLocked(room),
		TimeLeft:    int(internal.RoundDuration.Seconds()),
	}
	deadline := room.RoundEndsAt
	code := room.Code
	room.Mu.Unlock()

	go h.runRevealTicker(room, ctx)
	go h.runCountdownTicker(room, ctx)
	go h.runRoundTimeout(room, ctx, deadline)

	log.Printf("[startRound] Room %s: round %d/%d started (answer photo %s)",
		code, start.RoundIndex+1, start.TotalRounds, photo.Src)

	SafeBroadcastToRoom(room, internal.Message[internal.RoundStartData]{
		Type: "round_start",
		Data: start,
	})
}

// timeoutRound resolves the round as unanswered. A late fire after the round
// was already resolved (or the room torn down) is a no-op.
func (h *Handler) timeoutRound(room *internal.Room) {
	room.Mu.Lock()
	if room.Closed || room.State != internal.StatePlaying || room.RoundWinner != "" {
		room.Mu.Unlock()
		return
	}

	room.RoundWinner = internal.TimeoutWinner
	cancelRoundTimersLocked(room)

	photo := room.Photos[room.CurrentRound]
	data := internal.RoundTimeoutData{
		Answer:     photo.Answer,
		PhotoSrc:   photo.Src,
		Scoreboard: scoreboardLocked(room),
	}
	code := room.Code
	room.Mu.Unlock()

	log.Printf("[timeoutRound] Room %s: round timed out, answer was %q", code, data.Answer)

	SafeBroadcastToRoom(room, internal.Message[internal.RoundTimeoutData]{
		Type: "round_timeout",
		Data: data,
	})

	h.advanceLater(room, internal.PostTimeoutDelay)
}

// advanceLater schedules the move to the next round. The state re-check at
// fire time makes a delayed advance on a finished or abandoned room harmless.
func (h *Handler) advanceLater(room *internal.Room, delay time.Duration) {
	time.AfterFunc(delay, func() {
		room.Mu.Lock()
		ok := !room.Closed && room.State == internal.StatePlaying
		room.Mu.Unlock()
		if ok {
			h.nextRound(room)
		}
	})
}

// nextRound advances the round index, finishing the game when the photo
// sequence is exhausted.
func (h *Handler) nextRound(room *internal.Room) {
	room.Mu.Lock()
	cancelRoundTimersLocked(room)

	room.CurrentRound++
	if room.CurrentRound >= room.TotalRounds {
		room.State = internal.StateFinished
		over := internal.GameOverData{Scoreboard: scoreboardLocked(room)}
		rec := finishedGameRecordLocked(room)
		code := room.Code
		room.Mu.Unlock()

		log.Printf("[nextRound] Room %s: game over", code)
		SafeBroadcastToRoom(room, internal.Message[internal.GameOverData]{
			Type: "game_over",
			Data: over,
		})
		h.recordGame(rec)
		return
	}
	room.Mu.Unlock()

	h.startRound(room)
}

func finishedGameRecordLocked(room *internal.Room) internal.GameRecord {
	rec := internal.GameRecord{
		RoomCode:     room.Code,
		RoundsPlayed: room.TotalRounds,
		Scoreboard:   scoreboardLocked(room),
		FinishedAt:   time.Now(),
	}
	if len(rec.Scoreboard) > 0 {
		rec.Winner = rec.Scoreboard[0].Name
		rec.WinnerScore = rec.Scoreboard[0].Score
	}
	return rec
}

// recordGame persists a finished game in the background. History is strictly
// write-behind: failures are logged and never reach the players.
func (h *Handler) recordGame(rec internal.GameRecord) {
	if h.history == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.history.RecordGame(ctx, rec); err != nil {
			log.Printf("[recordGame] Room %s: history insert failed: %v", rec.RoomCode, err)
		}
	}()
}
