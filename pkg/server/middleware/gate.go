package middleware

import (
	"encoding/json"
	"net/http"

	"gaianet-hq/gateway/pkg/api"
	"gaianet-hq/gateway/pkg/security/ratelimit"
	"gaianet-hq/gateway/pkg/telemetry/metrics"
)

// RateLimitGate rejects requests from blocked clients with 403 and
// over-limit clients with 429, before any handler work happens. Paths
// in exempt are never gated, so health and metrics stay reachable for
// a blocked client.
func RateLimitGate(monitor *ratelimit.Monitor, collector *metrics.Collector, exempt ...string) func(http.Handler) http.Handler {
	exemptPaths := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		exemptPaths[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := GetClientID(r.Context())
			if clientID == "" {
				clientID = ClientID(r)
			}

			if exemptPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if monitor.IsBlocked(clientID) {
				collector.RecordRateLimitRejection("blocked")
				writeJSONError(w, http.StatusForbidden, "Access denied")
				return
			}

			if !monitor.Allow(clientID) {
				collector.RecordRateLimitRejection("over_limit")
				writeJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}
