package game

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"

	"planpokergo/internal/store"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNotHost        = errors.New("only the host can lock votes")
)

// Action tells connected clients what to do after a room changed.
type Action string

const (
	ActionRefresh    Action = "refresh"     // data changed, stay on the current view
	ActionGotoResult Action = "goto_result" // navigate to the results view
	ActionGotoVote   Action = "goto_vote"   // navigate back to the voting view
)

// Notifier pushes a view action to every live connection of a room.
// Delivery is best effort; failed connections are the notifier's problem.
type Notifier interface {
	Broadcast(roomID string, action Action)
}

// ResultsDTO is the results payload. Average is nil until at least one
// player has voted.
type ResultsDTO struct {
	Locked  bool                `json:"locked"`
	Results []store.PlayerScore `json:"results"`
	Average *float64            `json:"average"`
}

type IGameService interface {
	CreateRoom(ctx context.Context, hostName string) (string, error)
	JoinRoom(ctx context.Context, roomID, name string) (string, error)
	SubmitVote(ctx context.Context, roomID, name string, score int) (string, error)
	LockVotes(ctx context.Context, roomID, name string) (string, error)
	GetResults(ctx context.Context, roomID string) (*ResultsDTO, error)
	RestartGame(ctx context.Context, roomID string) (string, error)
}

type gameService struct {
	rooms    *store.Store
	notifier Notifier
}

func NewGameService(rooms *store.Store, notifier Notifier) IGameService {
	return &gameService{
		rooms:    rooms,
		notifier: notifier,
	}
}

// CreateRoom always succeeds; the host is the room's first player.
func (svc *gameService) CreateRoom(ctx context.Context, hostName string) (string, error) {
	return svc.rooms.Create(hostName), nil
}

// JoinRoom is idempotent per name: joining twice leaves the room untouched
// and triggers no broadcast.
func (svc *gameService) JoinRoom(ctx context.Context, roomID, name string) (string, error) {
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return "", ErrRoomNotFound
	}
	if !room.AddPlayer(name) {
		return fmt.Sprintf("%s already joined!", name), nil
	}
	svc.notifier.Broadcast(roomID, ActionRefresh)
	return fmt.Sprintf("Welcome %s to room %s!", name, roomID), nil
}

// SubmitVote records the score, overwriting any earlier vote. The lock flag
// is deliberately not checked here: a late vote after lock is accepted.
func (svc *gameService) SubmitVote(ctx context.Context, roomID, name string, score int) (string, error) {
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return "", ErrRoomNotFound
	}
	if !room.SetScore(name, score) {
		return "", ErrPlayerNotFound
	}
	svc.notifier.Broadcast(roomID, ActionRefresh)
	return fmt.Sprintf("%s voted %d", name, score), nil
}

// LockVotes closes voting and sends clients to the results view. Only the
// host may lock; re-locking a locked room succeeds and re-notifies.
func (svc *gameService) LockVotes(ctx context.Context, roomID, name string) (string, error) {
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return "", ErrRoomNotFound
	}
	if name != room.Host() {
		return "", ErrNotHost
	}
	room.Lock()
	svc.notifier.Broadcast(roomID, ActionGotoResult)
	return fmt.Sprintf("Room %s voting locked", roomID), nil
}

// GetResults is a pure read; it never notifies.
func (svc *gameService) GetResults(ctx context.Context, roomID string) (*ResultsDTO, error) {
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	snap := room.Snapshot()

	scores := lo.FilterMap(snap.Players, func(p store.PlayerScore, _ int) (int, bool) {
		if p.Score == nil {
			return 0, false
		}
		return *p.Score, true
	})

	var average *float64
	if len(scores) > 0 {
		avg := math.Round(float64(lo.Sum(scores))/float64(len(scores))*100) / 100
		average = &avg
	}

	return &ResultsDTO{
		Locked:  snap.Locked,
		Results: snap.Players,
		Average: average,
	}, nil
}

// RestartGame wipes every score and reopens voting. Any caller may restart;
// there is no host check on this path.
func (svc *gameService) RestartGame(ctx context.Context, roomID string) (string, error) {
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return "", ErrRoomNotFound
	}
	room.Reset()
	svc.notifier.Broadcast(roomID, ActionGotoVote)
	return fmt.Sprintf("Room %s has been reset, vote again", roomID), nil
}
