package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/biftracker/backend/internal/service"
)

type AlertHandler struct {
	service AlertServiceInterface
}

func NewAlertHandler(service AlertServiceInterface) *AlertHandler {
	return &AlertHandler{service: service}
}

// Subscribe creates or re-arms the caller's alert on an item.
func (h *AlertHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var input service.SubscribeInput
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	alert, err := h.service.Subscribe(r.Context(), userID, itemID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, alert)
}

// Unsubscribe deactivates the caller's alert on an item.
func (h *AlertHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), userID, itemID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns the caller's alerts.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	alerts, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}

	respondJSON(w, http.StatusOK, alerts)
}

// Update modifies the caller's alert criteria.
func (h *AlertHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	alertID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid alert id")
		return
	}

	var input service.UpdateAlertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	alert, err := h.service.Update(r.Context(), userID, alertID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, alert)
}
