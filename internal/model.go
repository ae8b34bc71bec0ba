package internal

import (
	"context"
	"sync"
	"time"
)

const (
	RoundDuration     = 60 * time.Second
	RevealInterval    = 3 * time.Second
	CountdownInterval = 1 * time.Second
	PostWinDelay      = 5 * time.Second
	PostTimeoutDelay  = 2 * time.Second

	MinPlayersToStart = 2
	DefaultRounds     = 5
	RoomCodeLength    = 5
)

type GameState string

const (
	StateLobby    GameState = "lobby"
	StatePlaying  GameState = "playing"
	StateFinished GameState = "finished"
)

// TimeoutWinner marks a round that ended with nobody guessing the answer.
const TimeoutWinner = "__timeout__"

// Photo is one catalog entry. Answer is already lowercased by the catalog.
type Photo struct {
	Src    string `json:"src"`
	Answer string `json:"answer"`
}

// Circle is a revealed region of the round photo. Coordinates are normalized
// to [0,1]; radius is relative to the shorter canvas dimension.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

type ChatEntry struct {
	ID         string `json:"id"`
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	IsCorrect  bool   `json:"isCorrect"`
}

type ScoreEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RoundTimers owns the scheduled work of a single round: the reveal ticker,
// the countdown ticker, and the round timeout all watch the same context.
type RoundTimers struct {
	Context context.Context
	Cancel  context.CancelFunc
}

type Room struct {
	Code string
	Host string

	// Game state
	State        GameState `json:"state"`
	CurrentRound int       `json:"current_round"`
	TotalRounds  int       `json:"total_rounds"`

	// Fixed for the room's lifetime at creation
	Photos []Photo `json:"-"`

	// Per-round state, reset on every round transition
	Circles        []Circle    `json:"circles"`
	Messages       []ChatEntry `json:"messages"`
	RoundWinner    string      `json:"round_winner"`
	RoundStartTime time.Time   `json:"round_start_time"`
	RoundEndsAt    time.Time   `json:"round_ends_at"`

	// Players in join order
	Players []*Player `json:"players"`

	// Timer handles for the current round
	Timers *RoundTimers `json:"-"`

	// Set once the room has been removed from the store. Guards late timer
	// fires against mutating a dead room.
	Closed bool `json:"-"`

	// Concurrency control
	Mu sync.RWMutex `json:"-"`
}

// GameRecord is one finished game, as persisted by the history store.
type GameRecord struct {
	RoomCode     string       `json:"room_code"`
	RoundsPlayed int          `json:"rounds_played"`
	Winner       string       `json:"winner"`
	WinnerScore  int          `json:"winner_score"`
	Scoreboard   []ScoreEntry `json:"scoreboard"`
	FinishedAt   time.Time    `json:"finished_at"`
}
