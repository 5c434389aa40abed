package ingesting

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// parseWorkbook reads the first sheet of one XLSX source. The first row is
// the header, everything below is records. Short rows are padded with empty
// values so the column union stays consistent.
func parseWorkbook(data []byte) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(ErrUnreadableFile, err.Error())
	}

	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	header := make([]string, 0, len(rows[0]))
	for _, col := range rows[0] {
		header = append(header, strings.TrimSpace(col))
	}

	records := make([]domain.Row, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		record := make(domain.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(raw) {
				record[col] = strings.TrimSpace(raw[i])
			} else {
				record[col] = ""
			}
		}
		records = append(records, record)
	}

	return domain.NewDataset(header, records), nil
}
