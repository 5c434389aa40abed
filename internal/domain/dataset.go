package domain

import "strings"

// Field is a logical attribute of a betting record. Uploaded files disagree on
// column naming, so every access goes through the alias-resolved Schema instead
// of sniffing column names at each call site.
type Field string

const (
	FieldBetID     Field = "bet_id"
	FieldBrand     Field = "brand"
	FieldMarket    Field = "market"
	FieldSelection Field = "selection"
	FieldStruckAt  Field = "struck_at"
	FieldStake     Field = "stake"
	FieldCustomer  Field = "customer"
)

// fieldAliases lists the accepted column names per logical field, in resolution
// order. Matching is case-insensitive and the first hit wins.
var fieldAliases = map[Field][]string{
	FieldBetID:     {"BetId"},
	FieldBrand:     {"Source", "Brand", "Operator"},
	FieldMarket:    {"MarketName"},
	FieldSelection: {"SelectionName"},
	FieldStruckAt:  {"TimeBetStruckAt", "Time"},
	FieldStake:     {"Stake", "TotalStakeGBP"},
	FieldCustomer:  {"CustomerId", "Id"},
}

// Schema maps each resolvable logical field to the concrete column name found
// in the dataset. Fields without a matching column are absent from the map.
type Schema map[Field]string

// ResolveSchema resolves the logical fields against a concrete column set.
func ResolveSchema(columns []string) Schema {
	byLower := make(map[string]string, len(columns))
	for _, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, seen := byLower[key]; !seen {
			byLower[key] = col
		}
	}

	schema := make(Schema)
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if col, ok := byLower[strings.ToLower(alias)]; ok {
				schema[field] = col
				break
			}
		}
	}

	return schema
}

// Column returns the concrete column name backing a logical field.
func (s Schema) Column(field Field) (string, bool) {
	col, ok := s[field]
	return col, ok
}

// Row is one raw record. Missing columns are simply absent keys.
type Row map[string]string

// Dataset is the unified collection of raw records from every ingested source.
// Row order follows the original sources for stable display; aggregation must
// not depend on it. A Dataset is read-only once built.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"-"`
	Schema  Schema   `json:"-"`
}

// NewDataset builds a dataset and resolves its schema once.
func NewDataset(columns []string, rows []Row) *Dataset {
	return &Dataset{
		Columns: columns,
		Rows:    rows,
		Schema:  ResolveSchema(columns),
	}
}

// IsEmpty reports whether the dataset holds no records.
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.Rows) == 0
}

// Value reads a logical field from a row, degrading to empty when the field
// did not resolve or the row lacks the column.
func (d *Dataset) Value(row Row, field Field) string {
	col, ok := d.Schema.Column(field)
	if !ok {
		return ""
	}
	return row[col]
}

// Append merges another dataset into this one, unioning columns in first-seen
// order and re-resolving the schema.
func (d *Dataset) Append(other *Dataset) {
	if other == nil {
		return
	}

	known := make(map[string]bool, len(d.Columns))
	for _, col := range d.Columns {
		known[col] = true
	}
	for _, col := range other.Columns {
		if !known[col] {
			d.Columns = append(d.Columns, col)
			known[col] = true
		}
	}

	d.Rows = append(d.Rows, other.Rows...)
	d.Schema = ResolveSchema(d.Columns)
}
