package ingesting

import (
	"strings"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// fieldbookColumns is the fixed schema of a fieldbook grid paste. Logical
// records must cover at least this many columns.
var fieldbookColumns = []string{
	"BetId", "Dest", "Shop", "Stake", "Cashout", "Leg", "SF", "PercentMax",
	"BT", "Price", "PT", "Tag", "Time", "Country", "LiabilityGroup", "Nick",
	"Id", "NumBets",
}

const (
	fieldbookMinColumns = 18

	// cashoutSentinel marks the middle line of a three-line cashout record.
	cashoutSentinel = "FULL"
)

// parseFieldbook splits a clipboard grid paste into records. A cashout row
// arrives as three physical lines: a short data line, the sentinel line, and
// a currency-prefixed amount line. Those are spliced into one logical record
// with an empty placeholder for the cashout column. Lines still below the
// minimum column count after the splice attempt are dropped and counted.
func parseFieldbook(text string) (*domain.Dataset, int) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var (
		records []domain.Row
		skipped int
	)

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if isFieldbookHeader(fields) {
			continue
		}

		if len(fields) < fieldbookMinColumns {
			spliced, consumed := spliceCashoutRecord(fields, lines[i+1:])
			if spliced == nil {
				skipped++
				continue
			}
			fields = spliced
			i += consumed
		}

		records = append(records, fieldbookRecord(fields))
	}

	if len(records) == 0 {
		return nil, skipped
	}

	return domain.NewDataset(fieldbookColumns, records), skipped
}

// spliceCashoutRecord merges a short line with the two following lines when
// they form the sentinel-plus-amount cashout shape. It returns the merged
// field list and the number of extra lines consumed, or nil when the shape
// does not match or the merge still falls short.
func spliceCashoutRecord(short []string, rest []string) ([]string, int) {
	if len(rest) < 2 {
		return nil, 0
	}

	if !strings.EqualFold(strings.TrimSpace(rest[0]), cashoutSentinel) {
		return nil, 0
	}

	amountLine := rest[1]
	if !strings.HasPrefix(strings.TrimSpace(amountLine), "£") {
		return nil, 0
	}

	merged := make([]string, 0, fieldbookMinColumns)
	merged = append(merged, short...)
	merged = append(merged, "") // placeholder for the omitted cashout column
	merged = append(merged, strings.Split(amountLine, "\t")...)

	if len(merged) < fieldbookMinColumns {
		return nil, 0
	}

	return merged, 2
}

func fieldbookRecord(fields []string) domain.Row {
	record := make(domain.Row, len(fieldbookColumns))
	for i, col := range fieldbookColumns {
		if i < len(fields) {
			record[col] = strings.TrimSpace(fields[i])
		} else {
			record[col] = ""
		}
	}
	return record
}

func isFieldbookHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), "BetId")
}
