package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shoplite/shoplite-api/internal/middleware"
	"github.com/shoplite/shoplite-api/internal/model"
	"github.com/shoplite/shoplite-api/internal/service"
)

// InterestsHandler handles HTTP requests for categories and the
// per-user interest selection.
type InterestsHandler struct {
	service *service.InterestsService
}

// NewInterestsHandler creates a new InterestsHandler.
func NewInterestsHandler(svc *service.InterestsService) *InterestsHandler {
	return &InterestsHandler{service: svc}
}

// HandleListCategories handles GET /api/categories requests.
func (h *InterestsHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		slog.Error("listing categories failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to fetch categories"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": categories,
	})
}

// HandleGetInterests handles GET /api/interests requests. Identity
// comes from the session gate; a user with nothing stored gets an
// empty list.
func (h *InterestsHandler) HandleGetInterests(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	interests, err := h.service.GetInterests(r.Context(), claims.UserID)
	if err != nil {
		slog.Error("fetching interests failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to fetch interests"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"interests": interests,
	})
}

// HandleSaveInterests handles POST /api/interests requests. The stored
// set is replaced wholesale; unknown category ids are dropped.
func (h *InterestsHandler) HandleSaveInterests(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.SaveInterestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Interests == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Interests must be an array"))
		return
	}

	savedCount, err := h.service.SaveInterests(r.Context(), claims.UserID, req.Interests)
	if err != nil {
		slog.Error("saving interests failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Failed to save interests"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "Interests saved successfully",
		"savedCount": savedCount,
	})
}
