package analyzing

import (
	"fmt"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
	"github.com/oddsdesk/bet-metrics-api/pkg/utils"
)

// applyTimeFilter keeps records whose struck-at timestamp falls inside the
// closed interval [start, end]. It only runs when the dataset resolves a
// timestamp column and both bounds are set. A record whose timestamp fails
// to parse passes through unfiltered; the count is surfaced as a warning
// rather than failing the call.
func applyTimeFilter(dataset *domain.Dataset, rows []domain.Row, filter *domain.FilterSpec) ([]domain.Row, []string) {
	if _, ok := dataset.Schema.Column(domain.FieldStruckAt); !ok || !filter.TimeBounded() {
		return rows, nil
	}

	var (
		kept        []domain.Row
		unparseable int
	)

	for _, row := range rows {
		struckAt, err := utils.ParseTimestamp(dataset.Value(row, domain.FieldStruckAt))
		if err != nil {
			unparseable++
			kept = append(kept, row)
			continue
		}

		if struckAt.Before(*filter.Start) || struckAt.After(*filter.End) {
			continue
		}
		kept = append(kept, row)
	}

	var warnings []string
	if unparseable > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d record(s) had unparseable timestamps and were not time-filtered", unparseable))
	}

	return kept, warnings
}

// applyMarketFilter drops records outside the selected market set. An empty
// set means no restriction.
func applyMarketFilter(dataset *domain.Dataset, rows []domain.Row, filter *domain.FilterSpec) []domain.Row {
	if !filter.MarketsRestricted() {
		return rows
	}
	if _, ok := dataset.Schema.Column(domain.FieldMarket); !ok {
		return rows
	}

	allowed := toSet(filter.Markets)

	var kept []domain.Row
	for _, row := range rows {
		if allowed[dataset.Value(row, domain.FieldMarket)] {
			kept = append(kept, row)
		}
	}
	return kept
}

// applySelectionFilter restricts records per market via the market-to-
// selections map. An explicit entry with an empty list leaves that market
// unrestricted. Once market filtering is active, a market absent from the
// map is excluded outright.
func applySelectionFilter(dataset *domain.Dataset, rows []domain.Row, filter *domain.FilterSpec) []domain.Row {
	if filter == nil || len(filter.Selections) == 0 {
		return rows
	}
	if _, ok := dataset.Schema.Column(domain.FieldSelection); !ok {
		return rows
	}

	allowedByMarket := make(map[string]map[string]bool, len(filter.Selections))
	for market, selections := range filter.Selections {
		if len(selections) > 0 {
			allowedByMarket[market] = toSet(selections)
		} else {
			allowedByMarket[market] = nil
		}
	}

	var kept []domain.Row
	for _, row := range rows {
		allowed, present := allowedByMarket[dataset.Value(row, domain.FieldMarket)]
		switch {
		case present && allowed == nil:
			kept = append(kept, row)
		case present:
			if allowed[dataset.Value(row, domain.FieldSelection)] {
				kept = append(kept, row)
			}
		case filter.MarketsRestricted():
			// excluded: market filtering is active and this market has no
			// selection entry
		default:
			kept = append(kept, row)
		}
	}
	return kept
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
