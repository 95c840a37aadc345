package vote

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"Quotable/internal/api/handlers"
	"Quotable/internal/core/quotes"
	"Quotable/internal/core/ratelimit"
	"Quotable/internal/core/votes"
)

// handleServiceError converts service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *quotes.ValidationError
	if errors.As(err, &validationErr) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", validationErr.Message)
		return
	}

	var rateLimitErr *ratelimit.RateLimitedError
	if errors.As(err, &rateLimitErr) {
		w.Header().Set("Retry-After", strconv.Itoa(rateLimitErr.RetryAfterSeconds()))
		handlers.WriteError(w, http.StatusTooManyRequests, "RateLimited", "Too many votes, slow down")
		return
	}

	switch {
	case errors.Is(err, votes.ErrInvalidDirection):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Vote direction must be 'up' or 'down'")
	case errors.Is(err, votes.ErrNotAuthorized):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required to vote")
	case errors.Is(err, votes.ErrAnonymousVoter):
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Anonymous users cannot vote")
	case errors.Is(err, quotes.ErrQuoteNotFound):
		handlers.WriteError(w, http.StatusNotFound, "QuoteNotFound", "Quote not found")
	case errors.Is(err, votes.ErrVoteConflict):
		handlers.WriteError(w, http.StatusConflict, "Conflict", "Vote conflicted with a concurrent request, retry")
	default:
		log.Printf("Vote handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}
