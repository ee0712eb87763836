package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Decyzjomat API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for paired decision games: card matching, blind choices and the compatibility quiz.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /ws/echo
	getWSEcho, _ := r.NewOperationContext(http.MethodGet, "/ws/echo")
	getWSEcho.SetSummary("WebSocket echo")
	getWSEcho.SetDescription("Upgrades to a WebSocket connection that echoes messages back.")
	getWSEcho.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWSEcho)

	// POST /api/rooms
	postRooms, _ := r.NewOperationContext(http.MethodPost, "/api/rooms")
	postRooms.SetSummary("Create a room")
	postRooms.SetDescription("Creates a match, blind or quiz room. Pass clientId to join immediately as the first participant.")
	postRooms.AddReqStructure(CreateRoomRequest{})
	postRooms.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postRooms.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postRooms.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postRooms)

	// POST /api/rooms/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/join")
	postJoin.SetSummary("Join a room")
	postJoin.SetDescription("Joins a room by its share code. Joining again with the same clientId is a no-op.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postJoin)

	// GET /api/rooms/{roomID}
	getRoom, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/{roomID}")
	getRoom.SetSummary("Get room state")
	getRoom.SetDescription("Returns the current shared view of a room.")
	getRoom.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRoom.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getRoom)

	// POST /api/rooms/choice
	postChoice, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/choice")
	postChoice.SetSummary("Submit a choice")
	postChoice.SetDescription("Submits a match decision (cardId + decision) or a blind pick (roundIndex + pick).")
	postChoice.AddReqStructure(ChoiceRequest{})
	postChoice.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postChoice.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postChoice.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postChoice.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postChoice)

	// POST /api/rooms/quiz/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/quiz/answer")
	postAnswer.SetSummary("Submit a quiz answer")
	postAnswer.SetDescription("Answers the current question. The room advances when every participant has answered it.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(RoomResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	// POST /api/rooms/quiz/ai-summary
	postSummary, _ := r.NewOperationContext(http.MethodPost, "/api/rooms/quiz/ai-summary")
	postSummary.SetSummary("Generate the AI narrative summary")
	postSummary.SetDescription("Returns the cached narrative when the quiz result is unchanged, otherwise asks the configured provider.")
	postSummary.AddReqStructure(AISummaryRequest{})
	postSummary.AddRespStructure(AISummaryResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSummary.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postSummary.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postSummary)

	// GET /api/rooms/stream
	getStream, _ := r.NewOperationContext(http.MethodGet, "/api/rooms/stream")
	getStream.SetSummary("SSE room stream")
	getStream.SetDescription("Server-Sent Events stream of room updates. Pass roomId as query parameter; the first frame is a full snapshot.")
	getStream.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getStream.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getStream)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(spec)
	}
}
