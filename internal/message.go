package internal

// Message is the wire envelope for every frame in both directions.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound payloads

type CreateRoomData struct {
	PlayerName string `json:"playerName"`
	Rounds     int    `json:"rounds"`
}

type JoinRoomData struct {
	PlayerName string `json:"playerName"`
	Code       string `json:"code"`
}

type GuessData struct {
	Text string `json:"text"`
}

// Outbound payloads

type RoomCreatedData struct {
	Code       string `json:"code"`
	PhotoCount int    `json:"photoCount"`
}

type RoomJoinedData struct {
	Code string `json:"code"`
}

type LobbyData struct {
	Players []string `json:"players"`
	Host    string   `json:"host"`
}

type ErrorData struct {
	Message string `json:"message"`
}

type RoundStartData struct {
	RoundIndex  int          `json:"roundIndex"`
	TotalRounds int          `json:"totalRounds"`
	PhotoSrc    string       `json:"photoSrc"`
	Circles     []Circle     `json:"circles"`
	Scoreboard  []ScoreEntry `json:"scoreboard"`
	TimeLeft    int          `json:"timeLeft"`
}

type CirclesData struct {
	Circles []Circle `json:"circles"`
}

type RoundTimeData struct {
	TimeLeft int `json:"timeLeft"`
}

type ChatData struct {
	Message ChatEntry `json:"message"`
}

type RoundWonData struct {
	Winner     string       `json:"winner"`
	Answer     string       `json:"answer"`
	Points     int          `json:"points"`
	PhotoSrc   string       `json:"photoSrc"`
	Scoreboard []ScoreEntry `json:"scoreboard"`
}

type RoundTimeoutData struct {
	Answer     string       `json:"answer"`
	PhotoSrc   string       `json:"photoSrc"`
	Scoreboard []ScoreEntry `json:"scoreboard"`
}

type PlayerLeftData struct {
	PlayerName string   `json:"playerName"`
	Players    []string `json:"players"`
}

type GameOverData struct {
	Scoreboard []ScoreEntry `json:"scoreboard"`
}
