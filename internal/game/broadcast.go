package game

import (
	"log"
	"sort"

	"github.com/Manohar0077/guess-that-scene/internal"
)

// SafeBroadcastToRoom sends one message to every member. The player list is
// snapshotted under a read lock; the actual writes happen outside it so a
// slow client can never stall a state mutation.
func SafeBroadcastToRoom[T any](room *internal.Room, msg internal.Message[T]) {
	if room == nil {
		return
	}

	room.Mu.RLock()
	players := make([]*internal.Player, len(room.Players))
	copy(players, room.Players)
	roomCode := room.Code
	room.Mu.RUnlock()

	for _, player := range players {
		if player == nil || player.Conn == nil {
			continue
		}
		if err := player.SafeWriteJSON(msg); err != nil {
			log.Printf("[SafeBroadcastToRoom] room=%s: write to %s failed: %v",
				roomCode, player.Name, err)
		}
	}
}

// sendError reports a caller-local failure to one connection only. Errors are
// never broadcast.
func sendError(player *internal.Player, text string) {
	if player == nil {
		return
	}
	msg := internal.Message[internal.ErrorData]{
		Type: "error",
		Data: internal.ErrorData{Message: text},
	}
	if err := player.SafeWriteJSON(msg); err != nil {
		log.Printf("[sendError] write to %s failed: %v", player.Name, err)
	}
}

// scoreboardLocked recomputes the scoreboard from current scores, best score
// first with join order breaking ties. Callers must hold room.Mu.
func scoreboardLocked(room *internal.Room) []internal.ScoreEntry {
	board := make([]internal.ScoreEntry, 0, len(room.Players))
	for _, p := range room.Players {
		board = append(board, internal.ScoreEntry{Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	return board
}

// playerNamesLocked lists member names in join order. Callers must hold room.Mu.
func playerNamesLocked(room *internal.Room) []string {
	names := make([]string, 0, len(room.Players))
	for _, p := range room.Players {
		names = append(names, p.Name)
	}
	return names
}
