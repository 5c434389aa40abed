package handler

import (
	"net/http"
	"strings"

	"github.com/oddsdesk/bet-metrics-api/internal/usecases/normalizing"
	"github.com/oddsdesk/bet-metrics-api/pkg/apiErrors"
)

// NormalizeIncident rewrites a free-form trader-error note into the
// canonical one-sentence incident description.
func NormalizeIncident(normalizer normalizing.Normalizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "'text' is required", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"description": normalizer.Normalize(req.Text),
		})
	})
}
