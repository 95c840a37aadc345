package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

// BotDetector is the external abuse-signal collaborator: a boolean verdict
// evaluated before admission. The core treats a positive verdict as Forbidden
// and never inspects how it was produced.
type BotDetector interface {
	IsBot(r *http.Request) bool
}

// DetectorFunc adapts a function to the BotDetector interface
type DetectorFunc func(r *http.Request) bool

func (f DetectorFunc) IsBot(r *http.Request) bool { return f(r) }

// HeaderVerdictDetector reads a verdict header stamped by an upstream
// classifier (edge proxy or bot-detection service)
func HeaderVerdictDetector(header string) BotDetector {
	return DetectorFunc(func(r *http.Request) bool {
		return r.Header.Get(header) == "bot"
	})
}

// BotCheck rejects requests the detector flags, before any handler runs
func BotCheck(detector BotDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if detector != nil && detector.IsBot(r) {
				log.Printf("[BOT_REJECTED] ip=%s method=%s path=%s", r.RemoteAddr, r.Method, r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				if err := json.NewEncoder(w).Encode(map[string]string{
					"error":   "Forbidden",
					"message": "Access denied",
				}); err != nil {
					log.Printf("Failed to encode bot rejection: %v", err)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClientIP extracts the client network origin from the request
func GetClientIP(r *http.Request) string {
	// X-Forwarded-For may carry a chain; the first hop is the client
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
