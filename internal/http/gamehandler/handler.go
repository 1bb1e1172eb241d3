package gamehandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planpokergo/internal/services/game"
)

type Handler struct {
	svc game.IGameService
}

func New(svc game.IGameService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/create-room", h.createRoom)
	r.POST("/join", h.join)
	r.POST("/vote", h.vote)
	r.POST("/lock", h.lock)
	r.GET("/results", h.results)
	r.POST("/restart", h.restart)
}

// @Summary		Create a room
// @Description	Creates a new estimation room with the caller as host and returns the room code.
// @Tags			Rooms
// @Param			body	body		CreateRoomBody	true	"Host name payload"
// @Success		200		{object}	CreateRoomResponse
// @Failure		400		{object}	MessageResponse
// @Router			/create-room [post]
func (h *Handler) createRoom(ginCtx *gin.Context) {
	var body CreateRoomBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	roomID, err := h.svc.CreateRoom(ginCtx.Request.Context(), body.HostName)
	if err != nil {
		ginCtx.JSON(statusFor(err), MessageResponse{Message: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, CreateRoomResponse{RoomID: roomID})
}

// @Summary		Join a room
// @Description	Adds a player to the room. Joining twice with the same name is a harmless no-op.
// @Tags			Rooms
// @Param			body	body		JoinBody	true	"Join payload"
// @Success		200		{object}	MessageResponse
// @Failure		404		{object}	MessageResponse
// @Router			/join [post]
func (h *Handler) join(ginCtx *gin.Context) {
	var body JoinBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	msg, err := h.svc.JoinRoom(ginCtx.Request.Context(), body.RoomID, body.Name)
	if err != nil {
		ginCtx.JSON(statusFor(err), MessageResponse{Message: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// @Summary		Submit a vote
// @Description	Records (or overwrites) the player's score for the current round.
// @Tags			Voting
// @Param			body	body		VoteBody	true	"Vote payload"
// @Success		200		{object}	MessageResponse
// @Failure		404		{object}	MessageResponse
// @Router			/vote [post]
func (h *Handler) vote(ginCtx *gin.Context) {
	var body VoteBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	msg, err := h.svc.SubmitVote(ginCtx.Request.Context(), body.RoomID, body.Name, *body.Score)
	if err != nil {
		ginCtx.JSON(statusFor(err), MessageResponse{Message: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// @Summary		Lock voting
// @Description	Host closes the round; clients are pushed to the results view.
// @Tags			Voting
// @Param			body	body		LockBody	true	"Lock payload"
// @Success		200		{object}	MessageResponse
// @Failure		403		{object}	MessageResponse
// @Failure		404		{object}	MessageResponse
// @Router			/lock [post]
func (h *Handler) lock(ginCtx *gin.Context) {
	var body LockBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	msg, err := h.svc.LockVotes(ginCtx.Request.Context(), body.RoomID, body.Name)
	if err != nil {
		ginCtx.JSON(statusFor(err), MessageResponse{Message: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// @Summary		Get results
// @Description	Returns the roster with scores and the average of the cast votes.
// @Tags			Voting
// @Param			roomId	query		string	true	"Room code"	default(A1B2C3)
// @Success		200		{object}	game.ResultsDTO
// @Failure		404		{object}	MessageResponse
// @Router			/results [get]
func (h *Handler) results(ginCtx *gin.Context) {
	var q ResultsQuery
	if err := ginCtx.ShouldBindQuery(&q); err != nil {
		ginCtx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	dto, err := h.svc.GetResults(ginCtx.Request.Context(), q.RoomID)
	if err != nil {
		ginCtx.JSON(statusFor(err), MessageResponse{Message: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, dto)
}

// @Summary		Restart the round
// @Description	Clears every score and reopens voting; clients are pushed back to the voting view.
// @Tags			Voting
// @Param			body	body		RestartBody	true	"Restart payload"
// @Success		200		{object}	MessageResponse
// @Failure		404		{object}	MessageResponse
// @Router			/restart [post]
func (h *Handler) restart(ginCtx *gin.Context) {
	var body RestartBody
	if err := ginCtx.ShouldBindJSON(&body); err != nil {
		ginCtx.JSON(http.StatusBadRequest, MessageResponse{Message: err.Error()})
		return
	}

	msg, err := h.svc.RestartGame(ginCtx.Request.Context(), body.RoomID)
	if err != nil {
		ginCtx.JSON(statusFor(err), MessageResponse{Message: err.Error()})
		return
	}
	ginCtx.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrRoomNotFound), errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrNotHost):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
