package routes

import (
	"Quotable/internal/api/handlers/vote"
	"Quotable/internal/api/middleware"
	"Quotable/internal/core/votes"

	"github.com/go-chi/chi/v5"
)

// RegisterVoteRoutes registers the vote endpoint on the router
func RegisterVoteRoutes(r chi.Router, service votes.Service, authMiddleware *middleware.AuthMiddleware, detector middleware.BotDetector) {
	applyHandler := vote.NewApplyVoteHandler(service)

	// One endpoint covers create, switch and toggle-off; the service decides
	// which transition applies
	r.With(middleware.BotCheck(detector), authMiddleware.RequireAuth).Post("/quotes/{quoteID}/vote", applyHandler.HandleApplyVote)
}
