package server

import (
	"net/http"
	"strings"

	"github.com/Mothman910/decyzjomat/internal/quiz"
	"github.com/Mothman910/decyzjomat/internal/room"
)

type AnswerRequest struct {
	RoomID     string `json:"roomId"`
	ClientID   string `json:"clientId"`
	QuestionID string `json:"questionId"`
	OptionID   string `json:"optionId"`
}

func handleAnswer(rooms *room.Service, bank *quiz.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.ClientID = strings.TrimSpace(req.ClientID)
		if req.RoomID == "" || req.ClientID == "" || req.QuestionID == "" || req.OptionID == "" {
			writeError(w, http.StatusBadRequest, "roomId, clientId, questionId and optionId are required")
			return
		}

		rm := rooms.Registry().GetByID(req.RoomID)
		if rm == nil {
			writeError(w, http.StatusNotFound, "room not found")
			return
		}

		question, ok := bank.ByID(req.QuestionID)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown question")
			return
		}

		view, err := rooms.SubmitAnswer(rm, req.ClientID, question, req.OptionID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RoomResponse{Room: view})
	}
}
