package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand codes accepted by the engine and their display names. Only these
// codes survive brand restriction; everything else is dropped before the
// per-brand metrics are computed.
var brandDisplayNames = map[string]string{
	"BETFAIR":      "Betfair",
	"PADDY_POWER":  "Paddy Power",
	"SKYBET":       "SBGv2",
	"SBGv2":        "SBGv2",
}

// CanonicalBrands is the fixed output order. Every analysis emits exactly
// these rows, zero-valued when no records matched.
var CanonicalBrands = []string{"Betfair", "Paddy Power", "SBGv2"}

// DisplayBrand maps a raw brand code to its display name. The second return
// is false for codes outside the canonical set.
func DisplayBrand(code string) (string, bool) {
	name, ok := brandDisplayNames[code]
	return name, ok
}

// FilterSpec restricts a dataset before aggregation. An empty Markets list
// and nil bounds mean "no restriction on this dimension". In Selections, an
// entry with an empty list leaves that market unrestricted; once Markets is
// set, a market missing from a non-empty Selections map is excluded.
type FilterSpec struct {
	Markets    []string            `json:"markets"`
	Selections map[string][]string `json:"selections"`
	Start      *time.Time          `json:"start"`
	End        *time.Time          `json:"end"`
}

// MarketsRestricted reports whether market filtering is active.
func (f *FilterSpec) MarketsRestricted() bool {
	return f != nil && len(f.Markets) > 0
}

// TimeBounded reports whether both time bounds are set.
func (f *FilterSpec) TimeBounded() bool {
	return f != nil && f.Start != nil && f.End != nil
}

// BrandMetrics is one per-brand output row. Stakes stay decimal until the
// response boundary renders them as currency strings.
type BrandMetrics struct {
	Brand                string
	TotalBets            int
	TotalStakes          decimal.Decimal
	TotalUniqueCustomers int
}

// AnalysisResult is the full output of one filter-and-aggregate call.
type AnalysisResult struct {
	Rows     []BrandMetrics
	Totals   BrandMetrics
	Warnings []string
}

// DatasetSummary describes an ingested dataset so the UI can populate its
// filter pickers without re-reading the source files.
type DatasetSummary struct {
	ID          string              `json:"id"`
	Records     int                 `json:"records"`
	Columns     []string            `json:"columns"`
	Markets     []string            `json:"markets,omitempty"`
	Selections  map[string][]string `json:"selections,omitempty"`
	StruckFrom  *time.Time          `json:"struck_from,omitempty"`
	StruckUntil *time.Time          `json:"struck_until,omitempty"`
	SkippedRows int                 `json:"skipped_rows,omitempty"`
	Failures    []string            `json:"failures,omitempty"`
}
