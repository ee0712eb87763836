package server

import (
	"net/http"
	"strings"

	"github.com/Mothman910/decyzjomat/internal/room"
)

type JoinRequest struct {
	Code     string `json:"code"`
	ClientID string `json:"clientId"`
}

func handleJoin(rooms *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.ClientID = strings.TrimSpace(req.ClientID)
		if req.Code == "" || req.ClientID == "" {
			writeError(w, http.StatusBadRequest, "code and clientId are required")
			return
		}

		rm := rooms.Registry().FindByCode(req.Code)
		if rm == nil {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		view, err := rooms.Join(rm, req.ClientID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RoomResponse{Room: view})
	}
}
