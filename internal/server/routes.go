package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Decyzjomat API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(deps.Logger, deps.DB))
	r.Get("/ws/echo", handleWSEcho(deps.Logger))

	r.Route("/api/rooms", func(r chi.Router) {
		r.Post("/", handleCreateRoom(deps))
		r.Post("/join", handleJoin(deps.Rooms))
		r.Post("/choice", handleChoice(deps.Rooms))
		r.Post("/quiz/answer", handleAnswer(deps.Rooms, deps.Bank))
		r.Post("/quiz/ai-summary", handleAISummary(deps.Rooms, deps.AI, deps.Logger))
		r.Get("/stream", handleEvents(deps.Rooms, deps.Broker))
		r.Get("/{roomID}", handleRoomState(deps.Rooms))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			deps.Logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
