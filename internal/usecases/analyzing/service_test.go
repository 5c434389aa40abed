package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
	"github.com/oddsdesk/bet-metrics-api/pkg/log"
	"github.com/oddsdesk/bet-metrics-api/pkg/utils"
)

func init() {
	log.SetupTestLogger()
}

func buildDataset(columns []string, values [][]string) *domain.Dataset {
	rows := make([]domain.Row, 0, len(values))
	for _, record := range values {
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return domain.NewDataset(columns, rows)
}

func metricsByBrand(result *domain.AnalysisResult) map[string]domain.BrandMetrics {
	byBrand := make(map[string]domain.BrandMetrics, len(result.Rows))
	for _, row := range result.Rows {
		byBrand[row.Brand] = row
	}
	return byBrand
}

func TestAnalyzeMultiLegDeduplication(t *testing.T) {
	service := NewService()

	// Two legs of the same bet repeat the whole-bet stake; the bet counts
	// once and contributes its stake once, while both customers count.
	dataset := buildDataset(
		[]string{"BetId", "Source", "Stake", "CustomerId"},
		[][]string{
			{"1", "BETFAIR", "10.00", "C1"},
			{"1", "BETFAIR", "10.00", "C2"},
		},
	)

	result, err := service.Analyze(dataset, &domain.FilterSpec{})
	require.NoError(t, err)

	betfair := metricsByBrand(result)["Betfair"]
	assert.Equal(t, 1, betfair.TotalBets)
	assert.Equal(t, "£10.00", utils.FormatGBP(betfair.TotalStakes))
	assert.Equal(t, 2, betfair.TotalUniqueCustomers)
}

func TestAnalyzeCanonicalBrandRows(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"BetId", "Source", "Stake", "CustomerId"},
		[][]string{
			{"1", "BETFAIR", "10.00", "C1"},
			{"2", "SKYBET", "5.00", "C2"},
			{"3", "SBGv2", "2.50", "C2"},
			{"4", "UNKNOWN_BRAND", "99.00", "C9"},
		},
	)

	result, err := service.Analyze(dataset, &domain.FilterSpec{})
	require.NoError(t, err)

	// Always exactly the canonical rows in fixed order, zero-valued brands
	// included; codes outside the canonical set are dropped entirely.
	require.Len(t, result.Rows, len(domain.CanonicalBrands))
	for i, brand := range domain.CanonicalBrands {
		assert.Equal(t, brand, result.Rows[i].Brand)
	}

	byBrand := metricsByBrand(result)
	assert.Equal(t, 0, byBrand["Paddy Power"].TotalBets)
	assert.Equal(t, "£0.00", utils.FormatGBP(byBrand["Paddy Power"].TotalStakes))

	// SKYBET and SBGv2 are the same brand under two codes.
	assert.Equal(t, 2, byBrand["SBGv2"].TotalBets)
	assert.Equal(t, "£7.50", utils.FormatGBP(byBrand["SBGv2"].TotalStakes))

	assert.Equal(t, "Totals", result.Totals.Brand)
	assert.Equal(t, 3, result.Totals.TotalBets)
	assert.Equal(t, "£17.50", utils.FormatGBP(result.Totals.TotalStakes))
	// C1 for Betfair plus C2 for SBGv2; the dropped UNKNOWN_BRAND customer
	// must not count.
	assert.Equal(t, 2, result.Totals.TotalUniqueCustomers)
}

func TestAnalyzeMissingOptionalColumns(t *testing.T) {
	service := NewService()

	tests := []struct {
		name          string
		columns       []string
		values        [][]string
		wantBets      int
		wantStakes    string
		wantCustomers int
	}{
		{
			name:    "no stake column degrades to zero stakes",
			columns: []string{"BetId", "Source", "CustomerId"},
			values: [][]string{
				{"1", "BETFAIR", "C1"},
				{"2", "BETFAIR", "C2"},
			},
			wantBets:      2,
			wantStakes:    "£0.00",
			wantCustomers: 2,
		},
		{
			name:    "no bet-ID column falls back to row count",
			columns: []string{"Source", "Stake", "CustomerId"},
			values: [][]string{
				{"BETFAIR", "10.00", "C1"},
				{"BETFAIR", "10.00", "C1"},
			},
			wantBets: 2,
			// Without bet IDs there is nothing to deduplicate by, so both
			// rows contribute their stake.
			wantStakes:    "£20.00",
			wantCustomers: 1,
		},
		{
			name:    "no customer column degrades to zero customers",
			columns: []string{"BetId", "Source", "Stake"},
			values: [][]string{
				{"1", "BETFAIR", "10.00"},
			},
			wantBets:      1,
			wantStakes:    "£10.00",
			wantCustomers: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset := buildDataset(tt.columns, tt.values)

			result, err := service.Analyze(dataset, &domain.FilterSpec{})
			require.NoError(t, err)

			betfair := metricsByBrand(result)["Betfair"]
			assert.Equal(t, tt.wantBets, betfair.TotalBets)
			assert.Equal(t, tt.wantStakes, utils.FormatGBP(betfair.TotalStakes))
			assert.Equal(t, tt.wantCustomers, betfair.TotalUniqueCustomers)
		})
	}
}

func TestAnalyzeMissingBrandColumn(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"Foo", "Bar"},
		[][]string{{"a", "b"}},
	)

	_, err := service.Analyze(dataset, &domain.FilterSpec{})
	assert.ErrorIs(t, err, ErrNoBrandColumn)
}

func TestAnalyzeNilDataset(t *testing.T) {
	service := NewService()

	_, err := service.Analyze(nil, &domain.FilterSpec{})
	assert.ErrorIs(t, err, ErrNoDataset)
}

func TestAnalyzeBrandAliases(t *testing.T) {
	service := NewService()

	// The brand column resolves through aliases, case-insensitively.
	for _, column := range []string{"Source", "Brand", "Operator", "source"} {
		dataset := buildDataset(
			[]string{"BetId", column, "Stake"},
			[][]string{{"1", "PADDY_POWER", "3.00"}},
		)

		result, err := service.Analyze(dataset, &domain.FilterSpec{})
		require.NoError(t, err, column)
		assert.Equal(t, 1, metricsByBrand(result)["Paddy Power"].TotalBets, column)
	}
}

func TestAnalyzeTimeFilter(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"BetId", "Source", "Stake", "TimeBetStruckAt"},
		[][]string{
			{"1", "BETFAIR", "10.00", "2024-03-01 10:00:00"},
			{"2", "BETFAIR", "20.00", "2024-03-01 12:00:00"},
			{"3", "BETFAIR", "40.00", "2024-03-01 18:00:00"},
			{"4", "BETFAIR", "80.00", "garbage-timestamp"},
		},
	)

	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	result, err := service.Analyze(dataset, &domain.FilterSpec{Start: &start, End: &end})
	require.NoError(t, err)

	// The interval is closed: both boundary records stay. The unparseable
	// record passes through with a warning instead of failing the call.
	betfair := metricsByBrand(result)["Betfair"]
	assert.Equal(t, 3, betfair.TotalBets)
	assert.Equal(t, "£110.00", utils.FormatGBP(betfair.TotalStakes))
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "unparseable")
}

func TestAnalyzeTimeFilterRequiresBothBounds(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"BetId", "Source", "Stake", "Time"},
		[][]string{
			{"1", "BETFAIR", "10.00", "2024-03-01 10:00:00"},
			{"2", "BETFAIR", "20.00", "2024-03-02 10:00:00"},
		},
	)

	start := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	result, err := service.Analyze(dataset, &domain.FilterSpec{Start: &start})
	require.NoError(t, err)

	// A single bound leaves the dataset unfiltered.
	assert.Equal(t, 2, metricsByBrand(result)["Betfair"].TotalBets)
}

func TestAnalyzeMarketAndSelectionFilters(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"BetId", "Source", "Stake", "MarketName", "SelectionName"},
		[][]string{
			{"1", "BETFAIR", "10.00", "Match Odds", "Home"},
			{"2", "BETFAIR", "20.00", "Match Odds", "Away"},
			{"3", "BETFAIR", "40.00", "Correct Score", "1-0"},
			{"4", "BETFAIR", "80.00", "Total Goals", "Over 2.5"},
		},
	)

	result, err := service.Analyze(dataset, &domain.FilterSpec{
		Markets: []string{"Match Odds", "Correct Score"},
		Selections: map[string][]string{
			"Match Odds": {"Home"},
			// Explicit empty entry: Correct Score stays unrestricted.
			"Correct Score": {},
		},
	})
	require.NoError(t, err)

	betfair := metricsByBrand(result)["Betfair"]
	assert.Equal(t, 2, betfair.TotalBets)
	assert.Equal(t, "£50.00", utils.FormatGBP(betfair.TotalStakes))
}

func TestAnalyzeSelectionFilterExcludesUnmappedMarkets(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"BetId", "Source", "Stake", "MarketName", "SelectionName"},
		[][]string{
			{"1", "BETFAIR", "10.00", "Match Odds", "Home"},
			{"2", "BETFAIR", "40.00", "Correct Score", "1-0"},
		},
	)

	// With market filtering active, a market with no selection entry is
	// excluded outright rather than passing unrestricted.
	result, err := service.Analyze(dataset, &domain.FilterSpec{
		Markets: []string{"Match Odds", "Correct Score"},
		Selections: map[string][]string{
			"Match Odds": {"Home"},
		},
	})
	require.NoError(t, err)

	betfair := metricsByBrand(result)["Betfair"]
	assert.Equal(t, 1, betfair.TotalBets)
	assert.Equal(t, "£10.00", utils.FormatGBP(betfair.TotalStakes))
}

func TestAnalyzeSelectionFilterWithoutMarketRestriction(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"BetId", "Source", "Stake", "MarketName", "SelectionName"},
		[][]string{
			{"1", "BETFAIR", "10.00", "Match Odds", "Home"},
			{"2", "BETFAIR", "20.00", "Match Odds", "Away"},
			{"3", "BETFAIR", "40.00", "Correct Score", "1-0"},
		},
	)

	// No market restriction: the absent-entry exclusion does not apply, so
	// the Correct Score row survives while Match Odds is narrowed to Home.
	result, err := service.Analyze(dataset, &domain.FilterSpec{
		Selections: map[string][]string{
			"Match Odds": {"Home"},
		},
	})
	require.NoError(t, err)

	betfair := metricsByBrand(result)["Betfair"]
	assert.Equal(t, 2, betfair.TotalBets)
	assert.Equal(t, "£50.00", utils.FormatGBP(betfair.TotalStakes))
}

func TestAnalyzeCurrencyAnnotatedStakes(t *testing.T) {
	service := NewService()

	dataset := buildDataset(
		[]string{"BetId", "Source", "TotalStakeGBP"},
		[][]string{
			{"1", "BETFAIR", "£1,250.50"},
			{"2", "BETFAIR", "10.00 GBP"},
			{"3", "BETFAIR", "not-a-number"},
		},
	)

	result, err := service.Analyze(dataset, &domain.FilterSpec{})
	require.NoError(t, err)

	// Unparseable stakes contribute zero; the bet still counts.
	betfair := metricsByBrand(result)["Betfair"]
	assert.Equal(t, 3, betfair.TotalBets)
	assert.Equal(t, "£1260.50", utils.FormatGBP(betfair.TotalStakes))
}
