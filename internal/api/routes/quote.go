package routes

import (
	"Quotable/internal/api/handlers/quote"
	"Quotable/internal/api/middleware"
	"Quotable/internal/core/quotes"

	"github.com/go-chi/chi/v5"
)

// RegisterQuoteRoutes registers quote creation and deletion endpoints.
// Both mutations require a verified identity and pass the bot check before
// any handler runs; anonymous identities are allowed through.
func RegisterQuoteRoutes(r chi.Router, service quotes.Service, authMiddleware *middleware.AuthMiddleware, detector middleware.BotDetector) {
	createHandler := quote.NewCreateQuoteHandler(service)
	deleteHandler := quote.NewDeleteQuoteHandler(service)

	botCheck := middleware.BotCheck(detector)

	r.With(botCheck, authMiddleware.RequireAuth).Post("/quotes", createHandler.HandleCreateQuote)
	r.With(botCheck, authMiddleware.RequireAuth).Delete("/quotes/{quoteID}", deleteHandler.HandleDeleteQuote)
}
