package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// subscriber is the transport surface a room needs from a connection.
// *clientConn is the production implementation.
type subscriber interface {
	writeJSON(v any) error
	close()
}

type clientConn struct {
	rawConn *websocket.Conn
	mu      sync.Mutex
}

func (c *clientConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteJSON(v)
}

func (c *clientConn) write(mt int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteMessage(mt, data)
}

func (c *clientConn) close() {
	_ = c.rawConn.Close()
}
