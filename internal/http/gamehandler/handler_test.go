package gamehandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"planpokergo/internal/services/game"
	"planpokergo/internal/store"
)

type nopNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *nopNotifier) Broadcast(string, game.Action) {
	n.mu.Lock()
	n.count++
	n.mu.Unlock()
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := game.NewGameService(store.New(), &nopNotifier{})
	engine := gin.New()
	New(svc).Register(engine)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createRoom(t *testing.T, engine *gin.Engine, host string) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/create-room", CreateRoomBody{HostName: host})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[CreateRoomResponse](t, w)
	require.Len(t, resp.RoomID, 6)
	return resp.RoomID
}

func TestCreateRoomEndpoint(t *testing.T) {
	engine := newTestRouter(t)
	roomID := createRoom(t, engine, "Alice")

	w := doJSON(t, engine, http.MethodGet, "/results?roomId="+roomID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	dto := decode[game.ResultsDTO](t, w)
	require.False(t, dto.Locked)
	require.Len(t, dto.Results, 1)
	require.Equal(t, "Alice", dto.Results[0].Name)
}

func TestJoinEndpoint(t *testing.T) {
	req := require.New(t)
	engine := newTestRouter(t)
	roomID := createRoom(t, engine, "Alice")

	w := doJSON(t, engine, http.MethodPost, "/join", JoinBody{RoomID: roomID, Name: "Bob"})
	req.Equal(http.StatusOK, w.Code)
	req.Contains(decode[MessageResponse](t, w).Message, "Welcome Bob")

	// Repeated join: still 200, informational message.
	w = doJSON(t, engine, http.MethodPost, "/join", JoinBody{RoomID: roomID, Name: "Bob"})
	req.Equal(http.StatusOK, w.Code)
	req.Contains(decode[MessageResponse](t, w).Message, "already joined")

	// Unknown room.
	w = doJSON(t, engine, http.MethodPost, "/join", JoinBody{RoomID: "NOSUCH", Name: "Bob"})
	req.Equal(http.StatusNotFound, w.Code)
	req.Equal("room not found", decode[MessageResponse](t, w).Message)

	// Missing fields are rejected before the engine runs.
	w = doJSON(t, engine, http.MethodPost, "/join", map[string]string{"roomId": roomID})
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestVoteEndpoint(t *testing.T) {
	req := require.New(t)
	engine := newTestRouter(t)
	roomID := createRoom(t, engine, "Alice")
	doJSON(t, engine, http.MethodPost, "/join", JoinBody{RoomID: roomID, Name: "Bob"})

	score := 7
	w := doJSON(t, engine, http.MethodPost, "/vote", VoteBody{RoomID: roomID, Name: "Bob", Score: &score})
	req.Equal(http.StatusOK, w.Code)

	// Zero is a valid score.
	zero := 0
	w = doJSON(t, engine, http.MethodPost, "/vote", VoteBody{RoomID: roomID, Name: "Alice", Score: &zero})
	req.Equal(http.StatusOK, w.Code)

	// Player who never joined.
	w = doJSON(t, engine, http.MethodPost, "/vote", VoteBody{RoomID: roomID, Name: "Carol", Score: &score})
	req.Equal(http.StatusNotFound, w.Code)
	req.Equal("player not found", decode[MessageResponse](t, w).Message)

	// Missing score.
	w = doJSON(t, engine, http.MethodPost, "/vote", map[string]string{"roomId": roomID, "name": "Bob"})
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestLockEndpoint(t *testing.T) {
	req := require.New(t)
	engine := newTestRouter(t)
	roomID := createRoom(t, engine, "Alice")
	doJSON(t, engine, http.MethodPost, "/join", JoinBody{RoomID: roomID, Name: "Bob"})

	w := doJSON(t, engine, http.MethodPost, "/lock", LockBody{RoomID: roomID, Name: "Bob"})
	req.Equal(http.StatusForbidden, w.Code)
	req.Equal("only the host can lock votes", decode[MessageResponse](t, w).Message)

	w = doJSON(t, engine, http.MethodPost, "/lock", LockBody{RoomID: roomID, Name: "Alice"})
	req.Equal(http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/results?roomId="+roomID, nil)
	req.True(decode[game.ResultsDTO](t, w).Locked)
}

func TestResultsEndpoint(t *testing.T) {
	req := require.New(t)
	engine := newTestRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/results?roomId=NOSUCH", nil)
	req.Equal(http.StatusNotFound, w.Code)

	// roomId is mandatory.
	w = doJSON(t, engine, http.MethodGet, "/results", nil)
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestRestartEndpoint(t *testing.T) {
	req := require.New(t)
	engine := newTestRouter(t)
	roomID := createRoom(t, engine, "Alice")

	w := doJSON(t, engine, http.MethodPost, "/restart", RestartBody{RoomID: roomID})
	req.Equal(http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/restart", RestartBody{RoomID: "NOSUCH"})
	req.Equal(http.StatusNotFound, w.Code)
}

// The whole session flow, end to end over HTTP.
func TestSessionFlow(t *testing.T) {
	req := require.New(t)
	engine := newTestRouter(t)

	roomID := createRoom(t, engine, "Alice")

	w := doJSON(t, engine, http.MethodPost, "/join", JoinBody{RoomID: roomID, Name: "Bob"})
	req.Equal(http.StatusOK, w.Code)

	seven, five := 7, 5
	doJSON(t, engine, http.MethodPost, "/vote", VoteBody{RoomID: roomID, Name: "Bob", Score: &seven})
	doJSON(t, engine, http.MethodPost, "/vote", VoteBody{RoomID: roomID, Name: "Alice", Score: &five})

	w = doJSON(t, engine, http.MethodGet, "/results?roomId="+roomID, nil)
	dto := decode[game.ResultsDTO](t, w)
	req.False(dto.Locked)
	req.NotNil(dto.Average)
	req.Equal(6.0, *dto.Average)

	w = doJSON(t, engine, http.MethodPost, "/lock", LockBody{RoomID: roomID, Name: "Alice"})
	req.Equal(http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/restart", RestartBody{RoomID: roomID})
	req.Equal(http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/results?roomId="+roomID, nil)
	dto = decode[game.ResultsDTO](t, w)
	req.False(dto.Locked)
	req.Nil(dto.Average)
	for _, p := range dto.Results {
		req.Nil(p.Score)
	}
}
