package ingesting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
	"github.com/oddsdesk/bet-metrics-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

// workbookBytes builds an in-memory XLSX with the given rows on the first
// sheet, header first.
func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestIngestWorkbooks(t *testing.T) {
	service := NewService()

	first := workbookBytes(t, [][]interface{}{
		{"BetId", "Source", "Stake", "CustomerId"},
		{"1", "BETFAIR", "10.00", "C1"},
		{"2", "PADDY_POWER", "25.50", "C2"},
	})

	second := workbookBytes(t, [][]interface{}{
		{"BetId", "Source", "Stake", "CustomerId", "MarketName"},
		{"3", "SKYBET", "5.00", "C3", "Match Odds"},
	})

	result, err := service.IngestWorkbooks([]Source{
		{Name: "first.xlsx", Data: first},
		{Name: "second.xlsx", Data: second},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Dataset)

	assert.Len(t, result.Dataset.Rows, 3)
	assert.Empty(t, result.Failures)

	// Column union in first-seen order: MarketName only arrives with the
	// second workbook.
	assert.Equal(t, []string{"BetId", "Source", "Stake", "CustomerId", "MarketName"}, result.Dataset.Columns)

	// Rows from the first workbook lack the late column entirely.
	assert.Equal(t, "Match Odds", result.Dataset.Value(result.Dataset.Rows[2], domain.FieldMarket))
	assert.Equal(t, "", result.Dataset.Value(result.Dataset.Rows[0], domain.FieldMarket))
}

func TestIngestWorkbooksFailureIsolation(t *testing.T) {
	service := NewService()

	good := workbookBytes(t, [][]interface{}{
		{"BetId", "Source", "Stake"},
		{"1", "BETFAIR", "10.00"},
	})

	result, err := service.IngestWorkbooks([]Source{
		{Name: "broken.xlsx", Data: []byte("this is not a workbook")},
		{Name: "good.xlsx", Data: good},
	})
	require.NoError(t, err)

	assert.Len(t, result.Dataset.Rows, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken.xlsx", result.Failures[0].Source)
	assert.ErrorIs(t, result.Failures[0], ErrUnreadableFile)
}

func TestIngestWorkbooksAllSourcesFail(t *testing.T) {
	service := NewService()

	headerOnly := workbookBytes(t, [][]interface{}{
		{"BetId", "Source", "Stake"},
	})

	result, err := service.IngestWorkbooks([]Source{
		{Name: "broken.xlsx", Data: []byte("nope")},
		{Name: "empty.xlsx", Data: headerOnly},
	})

	assert.ErrorIs(t, err, ErrNoData)
	assert.Len(t, result.Failures, 2)
	assert.ErrorIs(t, result.Failures[1], ErrEmptySheet)
}

func TestIngestFieldbook(t *testing.T) {
	service := NewService()

	result, err := service.IngestFieldbook(fullLine("1001", "10.00"))
	require.NoError(t, err)
	assert.Len(t, result.Dataset.Rows, 1)
	assert.Zero(t, result.SkippedRows)
}

func TestIngestFieldbookEmptyPaste(t *testing.T) {
	service := NewService()

	_, err := service.IngestFieldbook("   \n\t  ")
	assert.ErrorIs(t, err, ErrEmptyPaste)
}

func TestIngestFieldbookOnlyMalformedRows(t *testing.T) {
	service := NewService()

	result, err := service.IngestFieldbook("junk\tline")
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, 1, result.SkippedRows)
}
