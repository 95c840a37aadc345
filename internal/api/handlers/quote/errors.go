package quote

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"Quotable/internal/api/handlers"
	"Quotable/internal/core/quotes"
	"Quotable/internal/core/ratelimit"
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
		handlers.WriteError(w, http.StatusTooManyRequests, "RateLimited", "Too many requests, slow down")
		return
	}

	switch {
	case errors.Is(err, quotes.ErrQuoteNotFound):
		handlers.WriteError(w, http.StatusNotFound, "QuoteNotFound", "Quote not found")
	case errors.Is(err, quotes.ErrNotQuoteOwner):
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Only the quote's creator can delete it")
	default:
		log.Printf("Quote handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
	}
}
