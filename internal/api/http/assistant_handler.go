package http

import (
	"net/http"
	"strings"

	"civdef-inventory-backend/internal/service"
)

type AssistantHandler struct {
	assistantSvc service.AssistantService
}

func NewAssistantHandler(assistantSvc service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantSvc: assistantSvc}
}

type assistantQueryPayload struct {
	Query string `json:"query"`
}

type assistantAnswerResponse struct {
	Answer string `json:"answer"`
}

func (h *AssistantHandler) Query(w http.ResponseWriter, r *http.Request) {
	var payload assistantQueryPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	answer, err := h.assistantSvc.Answer(r.Context(), payload.Query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assistantAnswerResponse{Answer: answer})
}
