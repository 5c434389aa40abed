package ingesting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// fullLine builds a well-formed 18-column fieldbook line with the given
// bet ID and stake.
func fullLine(betID, stake string) string {
	fields := []string{
		betID, "ONLINE", "Shop1", stake, "£0.00", "1", "N", "100",
		"WIN", "2.50", "SP", "tag", "2024-03-01 14:00:00", "GB", "LG1", "nick",
		"C100", "1",
	}
	return strings.Join(fields, "\t")
}

func TestParseFieldbook(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantRecords int
		wantSkipped int
	}{
		{
			name:        "single well-formed line",
			text:        fullLine("1001", "10.00"),
			wantRecords: 1,
			wantSkipped: 0,
		},
		{
			name: "header line is dropped",
			text: strings.Join([]string{
				strings.Join(fieldbookColumns, "\t"),
				fullLine("1001", "10.00"),
				fullLine("1002", "25.00"),
			}, "\n"),
			wantRecords: 2,
			wantSkipped: 0,
		},
		{
			name: "blank lines are ignored",
			text: fullLine("1001", "10.00") + "\n\n\n" + fullLine("1002", "5.00"),

			wantRecords: 2,
			wantSkipped: 0,
		},
		{
			name: "cashout record spliced from three lines",
			text: strings.Join([]string{
				fullLine("1001", "10.00"),
				// Short line: record missing the cashout column and the tail.
				strings.Join([]string{"2002", "ONLINE", "Shop1", "50.00"}, "\t"),
				"FULL",
				"£45.00\tN\t100\tWIN\t2.50\tSP\ttag\t2024-03-01 15:00:00\tGB\tLG1\tnick\tC200\t1",
			}, "\n"),
			wantRecords: 2,
			wantSkipped: 0,
		},
		{
			name:        "short line without sentinel is dropped and counted",
			text:        fullLine("1001", "10.00") + "\n" + "2002\tONLINE\tShop1",
			wantRecords: 1,
			wantSkipped: 1,
		},
		{
			// The failed splice leaves three short lines; each is dropped
			// and counted on its own.
			name: "sentinel without currency amount line is dropped",
			text: strings.Join([]string{
				"2002\tONLINE\tShop1\t50.00",
				"FULL",
				"not-an-amount",
				fullLine("1001", "10.00"),
			}, "\n"),
			wantRecords: 1,
			wantSkipped: 3,
		},
		{
			name:        "only malformed lines yields no dataset",
			text:        "2002\tONLINE\tShop1",
			wantRecords: 0,
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset, skipped := parseFieldbook(tt.text)

			if tt.wantRecords == 0 {
				assert.Nil(t, dataset)
			} else {
				require.NotNil(t, dataset)
				assert.Len(t, dataset.Rows, tt.wantRecords)
				assert.Equal(t, fieldbookColumns, dataset.Columns)
			}
			assert.Equal(t, tt.wantSkipped, skipped)
		})
	}
}

func TestParseFieldbookSplicedRecordValues(t *testing.T) {
	text := strings.Join([]string{
		strings.Join([]string{"2002", "ONLINE", "Shop1", "50.00"}, "\t"),
		"FULL",
		"£45.00\tN\t100\tWIN\t2.50\tSP\ttag\t2024-03-01 15:00:00\tGB\tLG1\tnick\tC200\t1",
	}, "\n")

	dataset, skipped := parseFieldbook(text)
	require.NotNil(t, dataset)
	require.Len(t, dataset.Rows, 1)
	assert.Zero(t, skipped)

	row := dataset.Rows[0]
	assert.Equal(t, "2002", row["BetId"])
	assert.Equal(t, "50.00", row["Stake"])
	// The omitted cashout column gets an empty placeholder; the amount line
	// continues the record from the next column on.
	assert.Equal(t, "", row["Cashout"])
	assert.Equal(t, "£45.00", row["Leg"])
	assert.Equal(t, "C200", row["Id"])
	assert.Equal(t, "1", row["NumBets"])
}

func TestParseFieldbookSchemaResolution(t *testing.T) {
	dataset, _ := parseFieldbook(fullLine("1001", "10.00"))
	require.NotNil(t, dataset)

	betCol, ok := dataset.Schema.Column(domain.FieldBetID)
	require.True(t, ok)
	assert.Equal(t, "BetId", betCol)

	stakeCol, ok := dataset.Schema.Column(domain.FieldStake)
	require.True(t, ok)
	assert.Equal(t, "Stake", stakeCol)

	// A fieldbook paste has no brand column; analysis of it must fail with
	// the missing-brand error rather than fabricate brands.
	_, ok = dataset.Schema.Column(domain.FieldBrand)
	assert.False(t, ok)

	timeCol, ok := dataset.Schema.Column(domain.FieldStruckAt)
	require.True(t, ok)
	assert.Equal(t, "Time", timeCol)

	customerCol, ok := dataset.Schema.Column(domain.FieldCustomer)
	require.True(t, ok)
	assert.Equal(t, "Id", customerCol)
}
