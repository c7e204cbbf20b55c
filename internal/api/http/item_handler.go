package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"civdef-inventory-backend/internal/domain"
	"civdef-inventory-backend/internal/service"
)

type ItemHandler struct {
	inventorySvc service.InventoryService
}

func NewItemHandler(inventorySvc service.InventoryService) *ItemHandler {
	return &ItemHandler{inventorySvc: inventorySvc}
}

func pathID(r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventorySvc.ListItems(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.inventorySvc.GetItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type itemPayload struct {
	Name              string            `json:"name"`
	Category          domain.Category   `json:"category"`
	Quantity          int32             `json:"quantity"`
	Available         *int32            `json:"available,omitempty"` // update only; ignored on create
	Description       string            `json:"description"`
	Specifications    map[string]string `json:"specifications"`
	ImageURL          string            `json:"image_url"`
	ManualURL         string            `json:"manual_url"`
	UsageInstructions string            `json:"usage_instructions"`
}

func (p *itemPayload) toDomain() *domain.Item {
	specs := p.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	return &domain.Item{
		Name:              p.Name,
		Category:          p.Category,
		Quantity:          p.Quantity,
		Description:       p.Description,
		Specifications:    specs,
		ImageURL:          p.ImageURL,
		ManualURL:         p.ManualURL,
		UsageInstructions: p.UsageInstructions,
	}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := payload.toDomain()
	if err := h.inventorySvc.CreateItem(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var payload itemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item := payload.toDomain()
	item.ID = id
	// Full-replace semantics: a manual correction of available is allowed and
	// races request-driven adjustments last-write-wins.
	if payload.Available != nil {
		item.Available = *payload.Available
	}
	if err := h.inventorySvc.UpdateItem(r.Context(), item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type observationPayload struct {
	Author string                 `json:"author"`
	Text   string                 `json:"text"`
	Type   domain.ObservationType `json:"type"`
}

func (h *ItemHandler) AddObservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	actor, _ := ActorFromContext(r.Context())

	var payload observationPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	obs := &domain.Observation{
		Author: payload.Author,
		Text:   payload.Text,
		Type:   payload.Type,
	}
	if err := h.inventorySvc.AddObservation(r.Context(), actor, id, obs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, obs)
}

func (h *ItemHandler) DeleteObservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	obsID, ok := pathID(r, "obsID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid observation id")
		return
	}

	actor, _ := ActorFromContext(r.Context())
	if err := h.inventorySvc.DeleteObservation(r.Context(), actor, id, obsID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
