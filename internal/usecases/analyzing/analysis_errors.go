package analyzing

import "errors"

// Errors for the analysis context. A missing brand column is the one
// unrecoverable condition: it yields no result at all, which callers must
// keep distinct from a valid result with zero matching rows.
var (
	ErrNoDataset     = errors.New("no dataset to analyze")
	ErrNoBrandColumn = errors.New("no source/brand column found in the data, expected 'Source', 'Brand' or 'Operator'")
)
