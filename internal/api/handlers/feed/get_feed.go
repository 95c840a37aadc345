package feed

import (
	"net/http"
	"strconv"

	"Quotable/internal/api/handlers"
	"Quotable/internal/api/middleware"
	"Quotable/internal/core/feeds"
)

// GetFeedHandler handles feed retrieval
type GetFeedHandler struct {
	service feeds.Service
}

// NewGetFeedHandler creates a new feed handler
func NewGetFeedHandler(service feeds.Service) *GetFeedHandler {
	return &GetFeedHandler{
		service: service,
	}
}

// HandleGetFeed retrieves one page of the quote feed
// GET /feed?filter=all&author=&sort=new&cursor=42&limit=12
// Works for anonymous viewers; a valid token adds the viewer's own votes.
func (h *GetFeedHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := h.parseRequest(r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	page, err := h.service.GetFeed(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, page)
}

// parseRequest parses query parameters into a FeedRequest
func (h *GetFeedHandler) parseRequest(r *http.Request) (feeds.FeedRequest, error) {
	q := r.URL.Query()

	req := feeds.FeedRequest{
		FilterType: q.Get("filter"),
		Author:     q.Get("author"),
		Sort:       q.Get("sort"),
		ViewerID:   middleware.GetUserID(r),
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return req, errInvalidLimit
		}
		req.Limit = limit
	}

	if cursorStr := q.Get("cursor"); cursorStr != "" {
		cursor, err := strconv.ParseInt(cursorStr, 10, 64)
		if err != nil {
			return req, errInvalidCursor
		}
		req.Cursor = &cursor
	}

	return req, nil
}

var (
	errInvalidLimit  = paramError("limit must be a number")
	errInvalidCursor = paramError("cursor must be a number")
)

type paramError string

func (e paramError) Error() string { return string(e) }
