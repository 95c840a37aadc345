package routes

import (
	"Quotable/internal/api/handlers/feed"
	"Quotable/internal/api/middleware"
	"Quotable/internal/core/feeds"

	"github.com/go-chi/chi/v5"
)

// RegisterFeedRoutes registers the feed endpoint on the router.
// The feed is public; a valid token only enriches items with the viewer's
// own votes.
func RegisterFeedRoutes(r chi.Router, service feeds.Service, authMiddleware *middleware.AuthMiddleware) {
	getHandler := feed.NewGetFeedHandler(service)

	r.With(authMiddleware.OptionalAuth).Get("/feed", getHandler.HandleGetFeed)
}
