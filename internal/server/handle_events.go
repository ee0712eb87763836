package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Mothman910/decyzjomat/internal/room"
)

const ssePingInterval = 15 * time.Second

func handleEvents(rooms *room.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("roomId")
		if roomID == "" {
			writeError(w, http.StatusBadRequest, "roomId query parameter required")
			return
		}

		rm := rooms.Registry().GetByID(roomID)
		if rm == nil {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		// Subscribe before the snapshot so no update can slip between.
		ch := broker.Subscribe(rm.ID)
		defer broker.Unsubscribe(rm.ID, ch)

		snapshot, err := rooms.Snapshot(rm)
		if err == nil {
			fmt.Fprintf(w, "data: %s\n\n", snapshot)
			flusher.Flush()
		}

		ping := time.NewTicker(ssePingInterval)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "data: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
