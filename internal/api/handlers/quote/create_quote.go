package quote

import (
	"encoding/json"
	"net/http"

	"Quotable/internal/api/handlers"
	"Quotable/internal/api/middleware"
	"Quotable/internal/core/quotes"
)

// CreateQuoteHandler handles quote creation
type CreateQuoteHandler struct {
	service quotes.Service
}

// NewCreateQuoteHandler creates a new create quote handler
func NewCreateQuoteHandler(service quotes.Service) *CreateQuoteHandler {
	return &CreateQuoteHandler{
		service: service,
	}
}

type createQuoteRequest struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// HandleCreateQuote creates a new quote
// POST /quotes
//
// Request body: { "quote": "...", "author": "..." }
func (h *CreateQuoteHandler) HandleCreateQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var body createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	// Set by the auth middleware; anonymous identities are allowed to create
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	created, err := h.service.CreateQuote(r.Context(), quotes.CreateQuoteRequest{
		Text:   body.Text,
		Author: body.Author,
		UserID: userID,
		Origin: middleware.GetClientIP(r),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}
