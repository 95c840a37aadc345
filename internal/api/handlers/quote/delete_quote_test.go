package quote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Quotable/internal/api/middleware"
	"Quotable/internal/core/quotes"

	"github.com/go-chi/chi/v5"
)

// newDeleteRequest builds a DELETE /quotes/{quoteID} request with the route
// param set, authenticated when userID is non-empty
func newDeleteRequest(quoteID, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/quotes/"+quoteID, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("quoteID", quoteID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	}
	return req.WithContext(ctx)
}

func TestDeleteQuoteHandler_Success(t *testing.T) {
	var gotQuoteID int64
	var gotRequester string
	mockService := &mockQuoteService{
		deleteFunc: func(ctx context.Context, quoteID int64, requesterID string) error {
			gotQuoteID = quoteID
			gotRequester = requesterID
			return nil
		},
	}
	handler := NewDeleteQuoteHandler(mockService)

	w := httptest.NewRecorder()
	handler.HandleDeleteQuote(w, newDeleteRequest("42", "user-1"))

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d. Body: %s", w.Code, w.Body.String())
	}
	if gotQuoteID != 42 {
		t.Errorf("Expected quote id 42, got %d", gotQuoteID)
	}
	if gotRequester != "user-1" {
		t.Errorf("Expected requester user-1, got %s", gotRequester)
	}
}

func TestDeleteQuoteHandler_RequiresAuth(t *testing.T) {
	handler := NewDeleteQuoteHandler(&mockQuoteService{})

	w := httptest.NewRecorder()
	handler.HandleDeleteQuote(w, newDeleteRequest("42", ""))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestDeleteQuoteHandler_InvalidQuoteID(t *testing.T) {
	handler := NewDeleteQuoteHandler(&mockQuoteService{})

	w := httptest.NewRecorder()
	handler.HandleDeleteQuote(w, newDeleteRequest("abc", "user-1"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d. Body: %s", w.Code, w.Body.String())
	}
}

func TestDeleteQuoteHandler_ServiceError(t *testing.T) {
	tests := []struct {
		serviceError   error
		name           string
		expectedError  string
		expectedStatus int
	}{
		{
			name:           "quote missing",
			serviceError:   quotes.ErrQuoteNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "QuoteNotFound",
		},
		{
			name:           "not the owner",
			serviceError:   quotes.ErrNotQuoteOwner,
			expectedStatus: http.StatusForbidden,
			expectedError:  "NotAuthorized",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &mockQuoteService{
				deleteFunc: func(ctx context.Context, quoteID int64, requesterID string) error {
					return tc.serviceError
				},
			}
			handler := NewDeleteQuoteHandler(mockService)

			w := httptest.NewRecorder()
			handler.HandleDeleteQuote(w, newDeleteRequest("42", "user-2"))

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tc.expectedStatus, w.Code, w.Body.String())
			}

			var errResp errorResponse
			if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if errResp.Error != tc.expectedError {
				t.Errorf("Expected error %s, got %s", tc.expectedError, errResp.Error)
			}
		})
	}
}
