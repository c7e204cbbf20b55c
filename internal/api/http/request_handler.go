package http

import (
	"net/http"
	"time"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/service"
)

type RequestHandler struct {
	requestSvc service.RequestService
}

func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.requestSvc.ListRequests(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reqs)
}

type createRequestPayload struct {
	ItemID        int32  `json:"item_id"`
	Quantity      int32  `json:"quantity"`
	Notes         string `json:"notes"`
	ReturnDate    string `json:"return_date,omitempty"`     // YYYY-MM-DD
	RequesterName string `json:"requester_name,omitempty"` // admin override only
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var payload createRequestPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var returnDate *time.Time
	if payload.ReturnDate != "" {
		d, err := time.Parse("2006-01-02", payload.ReturnDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid return_date, expected YYYY-MM-DD")
			return
		}
		returnDate = &d
	}

	req, err := h.requestSvc.CreateRequest(r.Context(), actor, payload.ItemID, payload.Quantity, returnDate, payload.Notes, payload.RequesterName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

type updateStatusPayload struct {
	Status domain.RequestStatus `json:"status"`
}

func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var payload updateStatusPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.requestSvc.UpdateRequestStatus(r.Context(), actor, id, payload.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	if err := h.requestSvc.ClearAllRequests(r.Context(), actor); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
