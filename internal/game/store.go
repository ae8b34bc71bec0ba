package game

import (
	"crypto/rand"
	"errors"
	"log"
	mrand "math/rand"
	"sync"

	"github.com/Manohar0077/guess-that-scene/internal"
)

// Caller-local failures. The messages double as the user-facing text of the
// error event sent back to the originating connection.
var (
	ErrNoPhotos         = errors.New("No photos found in the photos folder. Add images first!")
	ErrRoomNotFound     = errors.New("Room not found.")
	ErrGameInProgress   = errors.New("Game already in progress.")
	ErrNameTaken        = errors.New("Name already taken in this room.")
	ErrNotEnoughPlayers = errors.New("Need at least 2 players.")
	ErrAlreadyInRoom    = errors.New("Already in a room.")
)

// Alphabet for room codes, skipping 0/O/1/I which read ambiguously on a
// phone screen across the table.
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Store owns the live rooms. All lookups and the check-and-insert of a fresh
// room code go through its lock.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*internal.Room),
	}
}

func randomRoomCode(n int) string {
	out := make([]byte, n)
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble, but a
		// room code is not worth dying for.
		for i := range out {
			out[i] = roomCodeAlphabet[mrand.Intn(len(roomCodeAlphabet))]
		}
		return string(out)
	}
	for i, b := range buf {
		// 256 is a multiple of len(alphabet), so the modulo is unbiased.
		out[i] = roomCodeAlphabet[int(b)%len(roomCodeAlphabet)]
	}
	return string(out)
}

// shufflePhotos returns a uniform random permutation of the catalog without
// mutating it.
func shufflePhotos(catalog []internal.Photo) []internal.Photo {
	shuffled := make([]internal.Photo, len(catalog))
	copy(shuffled, catalog)
	mrand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// CreateRoom builds a new room in the lobby state. The photo sequence is
// fixed here for the room's entire lifetime: a shuffle of the catalog,
// truncated to min(rounds, catalog size).
func (s *Store) CreateRoom(hostName string, rounds int, catalog []internal.Photo) (*internal.Room, error) {
	if len(catalog) == 0 {
		return nil, ErrNoPhotos
	}
	if rounds <= 0 {
		rounds = internal.DefaultRounds
	}
	if rounds > len(catalog) {
		rounds = len(catalog)
	}

	room := &internal.Room{
		Host:        hostName,
		State:       internal.StateLobby,
		Players:     make([]*internal.Player, 0, 4),
		Photos:      shufflePhotos(catalog)[:rounds],
		TotalRounds: rounds,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Retry until the code is free. With 32^5 codes and a handful of live
	// rooms a collision is rare, but a silent overwrite would orphan a room.
	for {
		code := randomRoomCode(internal.RoomCodeLength)
		if _, exists := s.rooms[code]; exists {
			log.Printf("[CreateRoom] Room code collision on %s, retrying", code)
			continue
		}
		room.Code = code
		s.rooms[code] = room
		break
	}

	log.Printf("[CreateRoom] Created room %s (host=%s, rounds=%d, catalog=%d)",
		room.Code, hostName, rounds, len(catalog))
	return room, nil
}

// Lookup returns the live room for a code, or nil.
func (s *Store) Lookup(code string) *internal.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[code]
}

// Remove drops a room from the store. Idempotent.
func (s *Store) Remove(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[code]; exists {
		delete(s.rooms, code)
		log.Printf("[Remove] Room %s removed from store", code)
	}
}

// Count reports the number of live rooms.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
