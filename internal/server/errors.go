package server

import (
	"errors"
	"net/http"

	"github.com/Mothman910/decyzjomat/internal/ai"
	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/room"
)

// Request validation failures raised at the edge, before the room core.
var (
	errUnknownGenre       = errors.New("unknown genre")
	errUnknownPack        = errors.New("unknown pack")
	errUnknownBlindTopic  = errors.New("blindTopic must be movies or words")
	errUnknownSubcategory = errors.New("unknown words subcategory")
)

// statusFor maps domain errors to HTTP statuses. Validation failures are
// 400, state conflicts 409, identity failures 403, upstream failures 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrUnknownOption),
		errors.Is(err, room.ErrRoundOutOfRange),
		errors.Is(err, room.ErrPackTooSmall),
		errors.Is(err, errUnknownGenre),
		errors.Is(err, errUnknownPack),
		errors.Is(err, errUnknownBlindTopic),
		errors.Is(err, errUnknownSubcategory):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrWrongMode),
		errors.Is(err, room.ErrQuizCompleted),
		errors.Is(err, room.ErrOutOfSync),
		errors.Is(err, room.ErrStaleSummary),
		errors.Is(err, room.ErrSummaryNotReady):
		return http.StatusConflict
	case errors.Is(err, cards.ErrUnavailable), errors.Is(err, ai.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}
