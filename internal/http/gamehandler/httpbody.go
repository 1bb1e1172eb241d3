package gamehandler

type CreateRoomBody struct {
	// Non-empty host names are recommended but not enforced.
	HostName string `json:"hostName" example:"Alice"`
} // @name CreateRoomRequest

type CreateRoomResponse struct {
	RoomID string `json:"roomId" example:"A1B2C3"`
} // @name CreateRoomResponse

type JoinBody struct {
	RoomID string `json:"roomId" binding:"required" example:"A1B2C3"`
	Name   string `json:"name"   binding:"required" example:"Bob"`
} // @name JoinRequest

type VoteBody struct {
	RoomID string `json:"roomId" binding:"required" example:"A1B2C3"`
	Name   string `json:"name"   binding:"required" example:"Bob"`
	Score  *int   `json:"score"  binding:"required" example:"5"`
} // @name VoteRequest

type LockBody struct {
	RoomID string `json:"roomId" binding:"required" example:"A1B2C3"`
	Name   string `json:"name"   binding:"required" example:"Alice"`
} // @name LockRequest

type RestartBody struct {
	RoomID string `json:"roomId" binding:"required" example:"A1B2C3"`
} // @name RestartRequest

type ResultsQuery struct {
	RoomID string `form:"roomId" binding:"required"`
} // @name ResultsQuery

type MessageResponse struct {
	Message string `json:"message"`
} // @name MessageResponse
