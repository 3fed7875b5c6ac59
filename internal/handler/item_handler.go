package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/biftracker/backend/internal/repository"
	"github.com/biftracker/backend/internal/service"
)

type ItemHandler struct {
	service ItemServiceInterface
}

func NewItemHandler(service ItemServiceInterface) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.ItemFilters{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Limit:    queryInt(r, "limit", 50),
		Offset:   queryInt(r, "offset", 0),
	}
	if v := r.URL.Query().Get("on_sale"); v != "" {
		if onSale, err := strconv.ParseBool(v); err == nil {
			filters.OnSale = &onSale
		}
	}

	items, err := h.service.List(r.Context(), filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) AddLink(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var input service.RetailerLinkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.service.AddLink(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, link)
}

func (h *ItemHandler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	history, err := h.service.GetPriceHistory(r.Context(), id, queryInt(r, "days", 90))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get price history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// ListRecentPriceUpdates returns the latest drops across the whole catalog.
func (h *ItemHandler) ListRecentPriceUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := h.service.GetRecentPriceUpdates(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get recent price updates")
		return
	}

	respondJSON(w, http.StatusOK, updates)
}

func (h *ItemHandler) GetPriceUpdates(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	updates, err := h.service.GetPriceUpdates(r.Context(), id, queryInt(r, "limit", 20))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get price updates")
		return
	}

	respondJSON(w, http.StatusOK, updates)
}
