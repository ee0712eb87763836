package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mothman910/decyzjomat/internal/room"
)

func handleRoomState(rooms *room.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm := rooms.Registry().GetByID(chi.URLParam(r, "roomID"))
		if rm == nil {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}
		writeJSON(w, http.StatusOK, RoomResponse{Room: rooms.View(rm)})
	}
}
