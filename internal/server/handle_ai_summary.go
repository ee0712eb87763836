package server

import (
	"log/slog"
	"net/http"

	"github.com/Mothman910/decyzjomat/internal/ai"
	"github.com/Mothman910/decyzjomat/internal/room"
)

type AISummaryRequest struct {
	RoomID string `json:"roomId"`
	// Fresh forces regeneration even when a cached narrative matches the
	// current quiz result.
	Fresh bool `json:"fresh,omitempty"`
}

type AISummaryResponse struct {
	Room   *room.View `json:"room"`
	Cached bool       `json:"cached"`
}

func handleAISummary(rooms *room.Service, provider ai.Provider, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AISummaryRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.RoomID == "" {
			writeError(w, http.StatusBadRequest, "roomId is required")
			return
		}

		rm := rooms.Registry().GetByID(req.RoomID)
		if rm == nil {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		proj, hash, err := rooms.SummaryProjection(rm)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if !req.Fresh {
			if _, ok := rooms.CachedAISummary(rm, hash); ok {
				writeJSON(w, http.StatusOK, AISummaryResponse{Room: rooms.View(rm), Cached: true})
				return
			}
		}

		text, err := provider.Generate(r.Context(), ai.BuildSummaryPrompt(proj))
		if err != nil {
			logger.Error("ai summary generation failed",
				"room_id", rm.ID,
				"provider", provider.Name(),
				"error", err,
			)
			writeDomainError(w, err)
			return
		}

		view, err := rooms.SetAISummary(rm, hash, text)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AISummaryResponse{Room: view, Cached: false})
	}
}
