package analyzing

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
	"github.com/oddsdesk/bet-metrics-api/pkg/utils"
)

// Analyzer computes per-brand aggregate metrics for a filtered dataset.
type Analyzer interface {
	Analyze(dataset *domain.Dataset, filter *domain.FilterSpec) (*domain.AnalysisResult, error)
}

type Service struct{}

// NewService creates the analysis service. Stateless; safe to call
// repeatedly against the same dataset.
func NewService() Analyzer {
	return &Service{}
}

// Analyze applies the time, market and selection filters, restricts to the
// canonical brands and computes the per-brand metric rows plus totals. The
// output always carries exactly the canonical brand rows in fixed order,
// zero-valued when a brand has no matching records. The only unrecoverable
// condition is a dataset with no brand-identifying column.
func (s *Service) Analyze(dataset *domain.Dataset, filter *domain.FilterSpec) (*domain.AnalysisResult, error) {
	if dataset == nil {
		return nil, ErrNoDataset
	}

	rows, warnings := applyTimeFilter(dataset, dataset.Rows, filter)
	rows = applyMarketFilter(dataset, rows, filter)
	rows = applySelectionFilter(dataset, rows, filter)

	if _, ok := dataset.Schema.Column(domain.FieldBrand); !ok {
		logrus.WithField("columns", dataset.Columns).Error("analyzing: no brand column in dataset")
		return nil, ErrNoBrandColumn
	}

	// Brand restriction and display-name mapping. Codes outside the
	// canonical set are dropped here.
	byBrand := make(map[string][]domain.Row, len(domain.CanonicalBrands))
	for _, row := range rows {
		display, ok := domain.DisplayBrand(dataset.Value(row, domain.FieldBrand))
		if !ok {
			continue
		}
		byBrand[display] = append(byBrand[display], row)
	}

	result := &domain.AnalysisResult{Warnings: warnings}
	totals := domain.BrandMetrics{Brand: "Totals", TotalStakes: decimal.Zero}

	for _, brand := range domain.CanonicalBrands {
		metrics := computeBrandMetrics(dataset, brand, byBrand[brand])
		result.Rows = append(result.Rows, metrics)

		totals.TotalBets += metrics.TotalBets
		totals.TotalStakes = totals.TotalStakes.Add(metrics.TotalStakes)
		totals.TotalUniqueCustomers += metrics.TotalUniqueCustomers
	}

	result.Totals = totals

	logrus.WithFields(logrus.Fields{
		"records_in":  len(dataset.Rows),
		"records_out": len(rows),
		"total_bets":  totals.TotalBets,
	}).Debug("analyzing: analysis complete")

	return result, nil
}

// computeBrandMetrics aggregates one brand's record set. Missing optional
// columns degrade to defined fallbacks, never to an error: no bet-ID column
// falls back to raw row count, no stake column to zero stakes, no customer
// column to zero customers.
func computeBrandMetrics(dataset *domain.Dataset, brand string, rows []domain.Row) domain.BrandMetrics {
	metrics := domain.BrandMetrics{Brand: brand, TotalStakes: decimal.Zero}

	_, hasBetID := dataset.Schema.Column(domain.FieldBetID)
	_, hasStake := dataset.Schema.Column(domain.FieldStake)
	_, hasCustomer := dataset.Schema.Column(domain.FieldCustomer)

	if hasBetID {
		metrics.TotalBets = countDistinct(dataset, rows, domain.FieldBetID)
	} else {
		metrics.TotalBets = len(rows)
	}

	if hasStake {
		metrics.TotalStakes = sumStakes(dataset, rows, hasBetID)
	}

	if hasCustomer {
		metrics.TotalUniqueCustomers = countDistinct(dataset, rows, domain.FieldCustomer)
	}

	return metrics
}

// sumStakes totals the stake column. Multi-leg bets repeat the whole-bet
// stake on every leg, so with a bet-ID column present only the first-seen
// stake per bet ID contributes. Unparseable stake values contribute zero.
func sumStakes(dataset *domain.Dataset, rows []domain.Row, dedupeByBetID bool) decimal.Decimal {
	total := decimal.Zero
	seen := make(map[string]bool)

	for _, row := range rows {
		if dedupeByBetID {
			betID := dataset.Value(row, domain.FieldBetID)
			if betID == "" || seen[betID] {
				continue
			}
			seen[betID] = true
		}

		stake, err := utils.ParseAmount(dataset.Value(row, domain.FieldStake))
		if err != nil {
			continue
		}
		total = total.Add(stake)
	}

	return total
}

// countDistinct counts distinct non-empty values of a field.
func countDistinct(dataset *domain.Dataset, rows []domain.Row, field domain.Field) int {
	seen := make(map[string]bool)
	for _, row := range rows {
		if v := dataset.Value(row, field); v != "" {
			seen[v] = true
		}
	}
	return len(seen)
}
