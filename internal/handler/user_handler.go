package handler

import (
	"encoding/json"
	"net/http"

	"github.com/biftracker/backend/internal/service"
)

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates or returns the caller's profile record.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Me returns the caller's profile record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
