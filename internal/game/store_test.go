package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manohar0077/guess-that-scene/internal"
)

func testCatalog(n int) []internal.Photo {
	photos := make([]internal.Photo, 0, n)
	for i := 0; i < n; i++ {
		photos = append(photos, internal.Photo{
			Src:    fmt.Sprintf("/photos/photo-%d.jpg", i),
			Answer: fmt.Sprintf("photo-%d", i),
		})
	}
	return photos
}

func TestCreateRoom(t *testing.T) {
	store := NewStore()

	room, err := store.CreateRoom("Amy", 3, testCatalog(10))
	require.NoError(t, err)

	assert.Equal(t, "Amy", room.Host)
	assert.Equal(t, internal.StateLobby, room.State)
	assert.Equal(t, 3, room.TotalRounds)
	assert.Len(t, room.Photos, 3)
	assert.Empty(t, room.Players)

	assert.Len(t, room.Code, internal.RoomCodeLength)
	for _, c := range room.Code {
		assert.Contains(t, roomCodeAlphabet, string(c))
	}

	assert.Same(t, room, store.Lookup(room.Code))
}

func TestCreateRoomTruncatesRoundsToCatalog(t *testing.T) {
	store := NewStore()

	room, err := store.CreateRoom("Amy", 10, testCatalog(6))
	require.NoError(t, err)

	assert.Equal(t, 6, room.TotalRounds)
	assert.Len(t, room.Photos, 6)
}

func TestCreateRoomDefaultRounds(t *testing.T) {
	store := NewStore()

	room, err := store.CreateRoom("Amy", 0, testCatalog(10))
	require.NoError(t, err)
	assert.Equal(t, internal.DefaultRounds, room.TotalRounds)
}

func TestCreateRoomEmptyCatalog(t *testing.T) {
	store := NewStore()

	_, err := store.CreateRoom("Amy", 5, nil)
	assert.ErrorIs(t, err, ErrNoPhotos)
	assert.Equal(t, 0, store.Count())
}

func TestCreateRoomPhotoSequenceIsPermutationSubset(t *testing.T) {
	catalog := testCatalog(8)
	store := NewStore()

	room, err := store.CreateRoom("Amy", 8, catalog)
	require.NoError(t, err)

	seen := make(map[string]bool)
	valid := make(map[string]bool)
	for _, p := range catalog {
		valid[p.Answer] = true
	}
	for _, p := range room.Photos {
		assert.True(t, valid[p.Answer], "photo %q not from the catalog", p.Answer)
		assert.False(t, seen[p.Answer], "photo %q selected twice", p.Answer)
		seen[p.Answer] = true
	}
}

func TestCreateRoomCodesAreUnique(t *testing.T) {
	store := NewStore()
	catalog := testCatalog(3)

	codes := make(map[string]bool)
	for i := 0; i < 200; i++ {
		room, err := store.CreateRoom("Amy", 1, catalog)
		require.NoError(t, err)
		assert.False(t, codes[room.Code], "duplicate room code %s", room.Code)
		codes[room.Code] = true
	}
	assert.Equal(t, 200, store.Count())
}

func TestLookupUnknownCode(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Lookup("ZZZZZ"))
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := NewStore()
	room, err := store.CreateRoom("Amy", 1, testCatalog(1))
	require.NoError(t, err)

	store.Remove(room.Code)
	assert.Nil(t, store.Lookup(room.Code))

	store.Remove(room.Code)
	assert.Equal(t, 0, store.Count())
}

func TestRandomRoomCodeAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := randomRoomCode(internal.RoomCodeLength)
		require.Len(t, code, internal.RoomCodeLength)
		for _, ambiguous := range []string{"0", "O", "1", "I"} {
			assert.False(t, strings.Contains(code, ambiguous),
				"code %s contains ambiguous character %s", code, ambiguous)
		}
	}
}
