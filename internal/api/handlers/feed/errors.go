package feed

import (
	"errors"
	"log"
	"net/http"

	"Quotable/internal/api/handlers"
	"Quotable/internal/core/quotes"
)

// handleServiceError converts service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *quotes.ValidationError
	if errors.As(err, &validationErr) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", validationErr.Message)
		return
	}

	log.Printf("Feed handler error: %v", err)
	handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "An internal error occurred")
}
