package ws

import (
	"sync"

	"planpokergo/internal/services/game"
)

// Hub keeps subscriber sets per room code. A code may gather subscribers
// before (or without) a matching room existing in the store.
type Hub struct {
	rooms sync.Map // room code -> *room
}

func NewHub() *Hub { return &Hub{} }

// Broadcast implements game.Notifier. Unknown codes are a silent no-op.
func (h *Hub) Broadcast(roomID string, action game.Action) {
	if v, ok := h.rooms.Load(roomID); ok {
		v.(*room).broadcast(ActionMessage{Action: action})
	}
}

func (h *Hub) Join(roomID string, c subscriber) {
	r, _ := h.rooms.LoadOrStore(roomID, newRoom())
	r.(*room).add(c)
}

func (h *Hub) Leave(roomID string, c subscriber) {
	if v, ok := h.rooms.Load(roomID); ok {
		v.(*room).remove(c)
	}
}

// Subscribers reports the live connection count for a room code.
func (h *Hub) Subscribers(roomID string) int {
	if v, ok := h.rooms.Load(roomID); ok {
		return v.(*room).size()
	}
	return 0
}
