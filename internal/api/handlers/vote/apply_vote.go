package vote

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Quotable/internal/api/handlers"
	"Quotable/internal/api/middleware"
	"Quotable/internal/core/votes"

	"github.com/go-chi/chi/v5"
)

// ApplyVoteHandler handles vote creation, switching and toggling
type ApplyVoteHandler struct {
	service votes.Service
}

// NewApplyVoteHandler creates a new apply vote handler
func NewApplyVoteHandler(service votes.Service) *ApplyVoteHandler {
	return &ApplyVoteHandler{
		service: service,
	}
}

type applyVoteRequest struct {
	Direction string `json:"direction"`
}

type applyVoteResponse struct {
	Likes int64 `json:"likes"`
}

// HandleApplyVote applies one vote action to a quote.
// Repeating a direction toggles the vote off; the opposite direction
// switches it.
// POST /quotes/{quoteID}/vote
//
// Request body: { "direction": "up" | "down" }
func (h *ApplyVoteHandler) HandleApplyVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quoteID, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "quoteID must be a number")
		return
	}

	var body applyVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if body.Direction == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "direction is required")
		return
	}

	likes, err := h.service.ApplyVote(r.Context(), votes.ApplyVoteRequest{
		QuoteID:   quoteID,
		VoterID:   middleware.GetUserID(r),
		Origin:    middleware.GetClientIP(r),
		Direction: votes.Direction(body.Direction),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, applyVoteResponse{Likes: likes})
}
