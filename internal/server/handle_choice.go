package server

import (
	"net/http"
	"strings"

	"github.com/Mothman910/decyzjomat/internal/room"
)

// ChoiceRequest carries either a match decision (cardId + decision) or a
// blind pick (roundIndex + pick). The populated pair selects the mode.
type ChoiceRequest struct {
	RoomID   string `json:"roomId"`
	ClientID string `json:"clientId"`

	CardID   string `json:"cardId,omitempty"`
	Decision string `json:"decision,omitempty"`

	RoundIndex *int   `json:"roundIndex,omitempty"`
	Pick       string `json:"pick,omitempty"`
}

func handleChoice(rooms *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChoiceRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.ClientID = strings.TrimSpace(req.ClientID)
		if req.RoomID == "" || req.ClientID == "" {
			writeError(w, http.StatusBadRequest, "roomId and clientId are required")
			return
		}

		rm := rooms.Registry().GetByID(req.RoomID)
		if rm == nil {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		var view *room.View
		var err error
		switch {
		case req.CardID != "":
			decision := room.Decision(req.Decision)
			if decision != room.DecisionLike && decision != room.DecisionNope {
				writeError(w, http.StatusBadRequest, "decision must be like or nope")
				return
			}
			view, err = rooms.SubmitChoice(rm, req.ClientID, req.CardID, decision)
		case req.RoundIndex != nil:
			pick := room.Pick(req.Pick)
			if pick != room.PickLeft && pick != room.PickRight {
				writeError(w, http.StatusBadRequest, "pick must be left or right")
				return
			}
			view, err = rooms.SubmitPick(rm, req.ClientID, *req.RoundIndex, pick)
		default:
			writeError(w, http.StatusBadRequest, "either cardId or roundIndex is required")
			return
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RoomResponse{Room: view})
	}
}
