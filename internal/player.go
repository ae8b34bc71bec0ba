package internal

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`

	Conn *websocket.Conn `json:"-"`
	Room *Room           `json:"-"` // Avoid circular reference in JSON

	JoinedAt time.Time `json:"joined_at"`

	Mu sync.Mutex `json:"-"`
}

// SafeWriteJSON serializes writes to the connection. gorilla/websocket allows
// only one concurrent writer, and both the reader goroutine and broadcasts
// write here.
func (p *Player) SafeWriteJSON(v any) error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(v)
}
