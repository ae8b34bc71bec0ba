package game

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/Manohar0077/guess-that-scene/internal"
)

// cancelRoundTimersLocked stops every scheduled activity of the current
// round. Callers must hold room.Mu. Cancellation alone is not what keeps a
// late fire from corrupting state; each fire path re-checks the round state
// under the lock.
func cancelRoundTimersLocked(room *internal.Room) {
	if room.Timers != nil && room.Timers.Cancel != nil {
		room.Timers.Cancel()
	}
	room.Timers = nil
}

// runRevealTicker appends one fresh circle every reveal interval and
// broadcasts the full list. Ticks after the round is resolved are skipped,
// not fatal; the ticker itself dies with the round context.
func (h *Handler) runRevealTicker(room *internal.Room, ctx context.Context) {
	ticker := time.NewTicker(internal.RevealInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			room.Mu.Lock()
			if room.Closed || room.State != internal.StatePlaying || room.RoundWinner != "" {
				room.Mu.Unlock()
				continue
			}
			room.Circles = append(room.Circles, generateCircle())
			data := internal.CirclesData{Circles: slices.Clone(room.Circles)}
			room.Mu.Unlock()

			SafeBroadcastToRoom(room, internal.Message[internal.CirclesData]{
				Type: "circles",
				Data: data,
			})
		}
	}
}

// runCountdownTicker broadcasts the whole seconds left in the round, once a
// second.
func (h *Handler) runCountdownTicker(room *internal.Room, ctx context.Context) {
	ticker := time.NewTicker(internal.CountdownInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			room.Mu.RLock()
			if room.Closed || room.State != internal.StatePlaying || room.RoundWinner != "" {
				room.Mu.RUnlock()
				continue
			}
			timeLeft := int(math.Ceil(time.Until(room.RoundEndsAt).Seconds()))
			room.Mu.RUnlock()

			if timeLeft < 0 {
				timeLeft = 0
			}
			SafeBroadcastToRoom(room, internal.Message[internal.RoundTimeData]{
				Type: "round_time",
				Data: internal.RoundTimeData{TimeLeft: timeLeft},
			})
		}
	}
}

// runRoundTimeout waits out the round deadline, then resolves the round as a
// timeout unless it was cancelled first.
func (h *Handler) runRoundTimeout(room *internal.Room, ctx context.Context, deadline time.Time) {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
		h.timeoutRound(room)
	}
}
