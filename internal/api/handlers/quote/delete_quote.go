package quote

import (
	"net/http"
	"strconv"

	"Quotable/internal/api/handlers"
	"Quotable/internal/api/middleware"
	"Quotable/internal/core/quotes"

	"github.com/go-chi/chi/v5"
)

// DeleteQuoteHandler handles quote deletion
type DeleteQuoteHandler struct {
	service quotes.Service
}

// NewDeleteQuoteHandler creates a new delete quote handler
func NewDeleteQuoteHandler(service quotes.Service) *DeleteQuoteHandler {
	return &DeleteQuoteHandler{
		service: service,
	}
}

// HandleDeleteQuote deletes a quote owned by the caller
// DELETE /quotes/{quoteID}
func (h *DeleteQuoteHandler) HandleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quoteID, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "quoteID must be a number")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.DeleteQuote(r.Context(), quoteID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
