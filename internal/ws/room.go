package ws

import (
	"sync"
)

type room struct {
	mu    sync.RWMutex
	conns map[subscriber]struct{}
}

func newRoom() *room { return &room{conns: map[subscriber]struct{}{}} }

func (r *room) add(c subscriber) {
	r.mu.Lock()
	r.conns[c] = struct{}{}
	r.mu.Unlock()
}

func (r *room) remove(c subscriber) {
	r.mu.Lock()
	delete(r.conns, c)
	r.mu.Unlock()
	c.close()
}

func (r *room) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func (r *room) broadcast(msg any) {
	// Take a quick snapshot of the current connections
	r.mu.RLock()
	conns := make([]subscriber, 0, len(r.conns))
	for c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	// Do the I/O outside the lock; a failed connection is pruned and the
	// broadcast carries on with the rest.
	var failed []subscriber
	for _, c := range conns {
		if err := c.writeJSON(msg); err != nil {
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		r.remove(c)
	}
}
