package ws

import "planpokergo/internal/services/game"

// ActionMessage is the only server→client frame: an instruction for the
// client's view. Clients never send application messages back.
type ActionMessage struct {
	Action game.Action `json:"action"`
}
