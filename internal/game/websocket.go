package game

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Manohar0077/guess-that-scene/internal"
)

// CatalogProvider lists the guessable photos. The game never mutates the
// catalog; it snapshots a shuffled subset at room creation.
type CatalogProvider interface {
	Photos() []internal.Photo
}

// HistoryRecorder persists finished games. Implementations must tolerate
// being called from a short-lived background goroutine.
type HistoryRecorder interface {
	RecordGame(ctx context.Context, rec internal.GameRecord) error
}

// Handler owns the websocket surface of the game: it upgrades connections,
// dispatches inbound messages, and drives the room state machine.
type Handler struct {
	store    *Store
	catalog  CatalogProvider
	history  HistoryRecorder
	upgrader websocket.Upgrader
}

// NewHandler wires the game against a room store and a photo catalog.
// history may be nil, in which case finished games are not recorded.
func NewHandler(store *Store, catalog CatalogProvider, history HistoryRecorder) *Handler {
	return &Handler{
		store:   store,
		catalog: catalog,
		history: history,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the connection and starts the per-connection
// message loop. The connection is unbound until a successful create_room or
// join_room.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[HandleWebSocket] Upgrade failed:", err)
		return
	}

	player := &internal.Player{Conn: conn}
	go h.handleMessages(player)
}

// handleMessages reads frames until the connection drops, routing each one by
// its type discriminator. Unparseable frames are dropped silently.
func (h *Handler) handleMessages(player *internal.Player) {
	defer func() {
		player.Conn.Close()
		h.removePlayer(player)
	}()

	for {
		_, raw, err := player.Conn.ReadMessage()
		if err != nil {
			log.Printf("[handleMessages] Read error for %q: %v", player.Name, err)
			break
		}

		var base internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &base); err != nil {
			log.Printf("[handleMessages] Dropping malformed frame: %v", err)
			continue
		}

		switch base.Type {
		case "create_room":
			var data internal.CreateRoomData
			if err := json.Unmarshal(base.Data, &data); err != nil {
				log.Printf("[handleMessages] Dropping malformed create_room: %v", err)
				continue
			}
			h.handleCreateRoom(player, data)

		case "join_room":
			var data internal.JoinRoomData
			if err := json.Unmarshal(base.Data, &data); err != nil {
				log.Printf("[handleMessages] Dropping malformed join_room: %v", err)
				continue
			}
			h.handleJoinRoom(player, data)

		case "start_game":
			h.handleStartGame(player)

		case "guess":
			var data internal.GuessData
			if err := json.Unmarshal(base.Data, &data); err != nil {
				log.Printf("[handleMessages] Dropping malformed guess: %v", err)
				continue
			}
			h.HandleGuess(player, data.Text)

		default:
			log.Printf("[handleMessages] Unknown message type %q from %q", base.Type, player.Name)
		}
	}
}

func (h *Handler) handleCreateRoom(player *internal.Player, data internal.CreateRoomData) {
	if player.Room != nil {
		sendError(player, ErrAlreadyInRoom.Error())
		return
	}
	name := strings.TrimSpace(data.PlayerName)
	if name == "" {
		sendError(player, "Player name is required.")
		return
	}

	catalog := h.catalog.Photos()
	room, err := h.store.CreateRoom(name, data.Rounds, catalog)
	if err != nil {
		sendError(player, err.Error())
		return
	}

	room.Mu.Lock()
	player.Name = name
	player.Room = room
	room.Players = append(room.Players, player)
	lobby := internal.LobbyData{Players: playerNamesLocked(room), Host: room.Host}
	room.Mu.Unlock()

	if err := player.SafeWriteJSON(internal.Message[internal.RoomCreatedData]{
		Type: "room_created",
		Data: internal.RoomCreatedData{Code: room.Code, PhotoCount: len(catalog)},
	}); err != nil {
		log.Printf("[handleCreateRoom] room_created write to %s failed: %v", name, err)
	}

	SafeBroadcastToRoom(room, internal.Message[internal.LobbyData]{Type: "lobby", Data: lobby})
}

func (h *Handler) handleJoinRoom(player *internal.Player, data internal.JoinRoomData) {
	if player.Room != nil {
		sendError(player, ErrAlreadyInRoom.Error())
		return
	}
	name := strings.TrimSpace(data.PlayerName)
	if name == "" {
		sendError(player, "Player name is required.")
		return
	}

	room := h.store.Lookup(strings.ToUpper(strings.TrimSpace(data.Code)))
	if room == nil {
		sendError(player, ErrRoomNotFound.Error())
		return
	}

	room.Mu.Lock()
	if room.State != internal.StateLobby {
		room.Mu.Unlock()
		sendError(player, ErrGameInProgress.Error())
		return
	}
	for _, p := range room.Players {
		if p.Name == name {
			room.Mu.Unlock()
			sendError(player, ErrNameTaken.Error())
			return
		}
	}
	player.Name = name
	player.Room = room
	room.Players = append(room.Players, player)
	lobby := internal.LobbyData{Players: playerNamesLocked(room), Host: room.Host}
	code := room.Code
	room.Mu.Unlock()

	log.Printf("[handleJoinRoom] %s joined room %s", name, code)

	if err := player.SafeWriteJSON(internal.Message[internal.RoomJoinedData]{
		Type: "room_joined",
		Data: internal.RoomJoinedData{Code: code},
	}); err != nil {
		log.Printf("[handleJoinRoom] room_joined write to %s failed: %v", name, err)
	}

	SafeBroadcastToRoom(room, internal.Message[internal.LobbyData]{Type: "lobby", Data: lobby})
}

// handleStartGame begins round 0. Non-host callers and rooms past the lobby
// are ignored silently; those are stale client actions, not faults.
func (h *Handler) handleStartGame(player *internal.Player) {
	room := player.Room
	if room == nil {
		return
	}

	room.Mu.Lock()
	if room.Host != player.Name || room.State != internal.StateLobby {
		room.Mu.Unlock()
		return
	}
	if len(room.Players) < internal.MinPlayersToStart {
		room.Mu.Unlock()
		sendError(player, ErrNotEnoughPlayers.Error())
		return
	}
	room.State = internal.StatePlaying
	room.CurrentRound = 0
	code := room.Code
	room.Mu.Unlock()

	log.Printf("[handleStartGame] Room %s: game started by host %s", code, player.Name)
	h.startRound(room)
}

// removePlayer handles disconnect cleanup. Safe to call for unbound
// connections and safe to call twice.
func (h *Handler) removePlayer(player *internal.Player) {
	room := player.Room
	if room == nil {
		return
	}
	player.Room = nil

	room.Mu.Lock()
	remaining := room.Players[:0]
	for _, p := range room.Players {
		if p != player {
			remaining = append(remaining, p)
		}
	}
	room.Players = remaining

	if len(room.Players) == 0 {
		cancelRoundTimersLocked(room)
		room.Closed = true
		code := room.Code
		room.Mu.Unlock()

		h.store.Remove(code)
		log.Printf("[removePlayer] Room %s is empty, discarded", code)
		return
	}

	left := internal.PlayerLeftData{
		PlayerName: player.Name,
		Players:    playerNamesLocked(room),
	}
	code := room.Code
	room.Mu.Unlock()

	log.Printf("[removePlayer] %s left room %s (%d remaining)", player.Name, code, len(left.Players))
	SafeBroadcastToRoom(room, internal.Message[internal.PlayerLeftData]{Type: "player_left", Data: left})
}
