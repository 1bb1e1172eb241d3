package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// codeLen is the length of a room code ("A1B2C3"-style token).
const codeLen = 6

// PlayerScore is one roster entry in a Snapshot. Score is nil until the
// player has voted in the current round.
type PlayerScore struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

// Snapshot is a point-in-time copy of a room, safe to read after the room
// has moved on.
type Snapshot struct {
	Locked  bool
	Players []PlayerScore
}

// Room holds the state of a single estimation session. All mutations are
// serialized by the room's own mutex, so operations on different rooms
// never block each other.
type Room struct {
	mu      sync.Mutex
	host    string
	locked  bool
	players map[string]*int // display name -> score, nil = not voted
}

func newRoom(host string) *Room {
	return &Room{
		host:    host,
		players: map[string]*int{host: nil},
	}
}

// Host never changes after creation.
func (r *Room) Host() string { return r.host }

// AddPlayer inserts name with no score. Returns false without mutating
// anything when the name is already on the roster.
func (r *Room) AddPlayer(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[name]; ok {
		return false
	}
	r.players[name] = nil
	return true
}

// SetScore records (or overwrites) the player's vote. Returns false when
// the player is not on the roster.
func (r *Room) SetScore(name string, score int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[name]; !ok {
		return false
	}
	s := score
	r.players[name] = &s
	return true
}

// Lock closes voting. Locking an already-locked room is allowed.
func (r *Room) Lock() {
	r.mu.Lock()
	r.locked = true
	r.mu.Unlock()
}

// Reset clears every score and reopens voting.
func (r *Room) Reset() {
	r.mu.Lock()
	for name := range r.players {
		r.players[name] = nil
	}
	r.locked = false
	r.mu.Unlock()
}

// Snapshot copies the roster, sorted by name so callers see a stable order.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Locked:  r.locked,
		Players: make([]PlayerScore, 0, len(r.players)),
	}
	for name, score := range r.players {
		var s *int
		if score != nil {
			v := *score
			s = &v
		}
		snap.Players = append(snap.Players, PlayerScore{Name: name, Score: s})
	}
	sort.Slice(snap.Players, func(i, j int) bool {
		return snap.Players[i].Name < snap.Players[j].Name
	})
	return snap
}

// Store owns every live room, keyed by room code. Rooms are created on
// demand and live until the process exits; there is no expiry.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func New() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

// Create makes a room with hostName as its only (score-less) player and
// returns the fresh room code.
func (s *Store) Create(hostName string) string {
	code := newCode()
	s.mu.Lock()
	s.rooms[code] = newRoom(hostName)
	s.mu.Unlock()
	return code
}

// Get returns the room for code, or false when the code is unknown.
func (s *Store) Get(code string) (*Room, bool) {
	s.mu.RLock()
	r, ok := s.rooms[code]
	s.mu.RUnlock()
	return r, ok
}

// newCode derives a short token from a random UUID. The space is large
// enough that a collision among process-lifetime rooms is negligible.
func newCode() string {
	return strings.ToUpper(uuid.NewString()[:codeLen])
}
