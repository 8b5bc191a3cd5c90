// internal/httpapi/handlers.go

// Package httpapi exposes the two service operations over HTTP: structuring
// free-text answers into a profile and recommending ranked cards.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	stderrors "card-advisor/internal/common/errors"
	"card-advisor/internal/common/logger"
	"card-advisor/internal/models"
)

// Structurer is the natural-language structuring operation.
type Structurer interface {
	Structure(ctx context.Context, answers map[string]string) (models.UserProfile, error)
}

// Recommender is the recommendation operation.
type Recommender interface {
	Recommend(ctx context.Context, user models.UserProfile) (*models.RankedRecommendation, error)
}

type Handler struct {
	structurer  Structurer
	recommender Recommender
	logger      logger.Logger
}

func NewHandler(structurer Structurer, recommender Recommender, log logger.Logger) *Handler {
	return &Handler{
		structurer:  structurer,
		recommender: recommender,
		logger:      log.WithFields(map[string]interface{}{"component": "httpapi"}),
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// ParseInput structures a flat map of free-text answers into a validated
// profile.
func (h *Handler) ParseInput(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var answers map[string]string
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    string(stderrors.ErrCodeStructuringParseFailed),
			Message: "invalid request body",
		}})
		return
	}

	profile, err := h.structurer.Structure(r.Context(), answers)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// Recommend returns ranked cards with reasons for a structured profile.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    string(stderrors.ErrCodeProfileValidationFailed),
			Message: "invalid request body",
		}})
		return
	}

	if err := profile.Validate(); err != nil {
		h.writeError(w, stderrors.NewProfileValidationFailedError(err.Error()))
		return
	}

	recommendation, err := h.recommender.Recommend(r.Context(), profile)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendation)
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := stderrors.HTTPStatus(err)
	body := errorBody{
		Code:    string(stderrors.Code(err)),
		Message: err.Error(),
	}

	var std *stderrors.StandardError
	if errors.As(err, &std) {
		body.Message = std.Message
		body.Details = std.Details
	}

	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed", map[string]interface{}{"status": status})
	}

	writeJSON(w, status, errorEnvelope{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
