package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/oddsdesk/bet-metrics-api/infrastructure/datastore"
	"github.com/oddsdesk/bet-metrics-api/internal/domain"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/analyzing"
	"github.com/oddsdesk/bet-metrics-api/pkg/apiErrors"
	"github.com/oddsdesk/bet-metrics-api/pkg/log"
	"github.com/oddsdesk/bet-metrics-api/pkg/utils"
)

// AnalysisRequest carries the filter restrictions for one analysis run.
// Empty fields mean no restriction on that dimension; time bounds must come
// as a pair.
type AnalysisRequest struct {
	Markets    []string            `json:"markets"`
	Selections map[string][]string `json:"selections"`
	Start      string              `json:"start"`
	End        string              `json:"end"`
}

// AnalysisRow is the rendered per-brand output row. The single-bet columns
// are reserved in the layout but not yet computed, so they render empty.
type AnalysisRow struct {
	Brand                string `json:"brand"`
	SingleBets           string `json:"single_bets"`
	SingleStakes         string `json:"single_stakes"`
	TotalBets            int    `json:"total_bets"`
	TotalStakes          string `json:"total_stakes"`
	TotalUniqueCustomers int    `json:"total_unique_customers"`
}

// AnalysisResponse is the full rendered metrics table plus any warnings
// raised while filtering.
type AnalysisResponse struct {
	Rows     []AnalysisRow `json:"rows"`
	Totals   AnalysisRow   `json:"totals"`
	Warnings []string      `json:"warnings,omitempty"`
}

// AnalyzeDataset runs the filter-and-aggregate pipeline over a stored
// dataset and renders the per-brand metrics table.
func AnalyzeDataset(analyzer analyzing.Analyzer, store datastore.DatasetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		entry, ok := store.Get(id)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, "dataset not found or expired", nil)
			return
		}

		var req AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		filter, err := buildFilter(&req)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		result, err := analyzer.Analyze(entry.Dataset, filter)
		if err != nil {
			handleAnalysisError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(renderAnalysis(result))
	})
}

// buildFilter parses the request time bounds into a FilterSpec. A bound
// that is present but unreadable fails the request rather than silently
// widening the window.
func buildFilter(req *AnalysisRequest) (*domain.FilterSpec, error) {
	start, err := utils.ParseInstant(req.Start)
	if err != nil {
		return nil, errors.Wrap(err, "invalid 'start' bound")
	}

	end, err := utils.ParseInstant(req.End)
	if err != nil {
		return nil, errors.Wrap(err, "invalid 'end' bound")
	}

	return &domain.FilterSpec{
		Markets:    req.Markets,
		Selections: req.Selections,
		Start:      start,
		End:        end,
	}, nil
}

func handleAnalysisError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, analyzing.ErrNoBrandColumn):
		apiErrors.WriteError(w, apiErrors.ErrMissingBrandData, "dataset has no brand-identifying column", nil)

	case errors.Is(err, analyzing.ErrNoDataset):
		apiErrors.WriteError(w, apiErrors.ErrNoData, "no dataset to analyze", nil)

	default:
		logger.WithError(err).Error("analysis: unexpected failure")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "error running analysis", nil)
	}
}

func renderAnalysis(result *domain.AnalysisResult) AnalysisResponse {
	response := AnalysisResponse{
		Rows:     make([]AnalysisRow, 0, len(result.Rows)),
		Totals:   renderMetrics(result.Totals),
		Warnings: result.Warnings,
	}
	for _, row := range result.Rows {
		response.Rows = append(response.Rows, renderMetrics(row))
	}
	return response
}

func renderMetrics(metrics domain.BrandMetrics) AnalysisRow {
	return AnalysisRow{
		Brand:                metrics.Brand,
		TotalBets:            metrics.TotalBets,
		TotalStakes:          utils.FormatGBP(metrics.TotalStakes),
		TotalUniqueCustomers: metrics.TotalUniqueCustomers,
	}
}
