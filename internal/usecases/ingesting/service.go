package ingesting

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oddsdesk/bet-metrics-api/internal/domain"
)

// Source is one uploaded workbook, already read into memory by the handler.
type Source struct {
	Name string
	Data []byte
}

// Result is the outcome of one ingestion call. Failures list the sources
// that could not be parsed; they never abort the sources that could.
type Result struct {
	Dataset     *domain.Dataset
	SkippedRows int
	Failures    []*SourceError
}

// Ingester loads tabular sources into a unified dataset.
type Ingester interface {
	IngestWorkbooks(sources []Source) (*Result, error)
	IngestFieldbook(text string) (*Result, error)
}

type Service struct{}

// NewService creates the ingestion service. It carries no state; every call
// is an independent pure transform.
func NewService() Ingester {
	return &Service{}
}

// IngestWorkbooks parses each workbook independently and concatenates the
// results with column union. A single bad file is recorded and skipped; the
// call only fails with ErrNoData when no source yields any records.
func (s *Service) IngestWorkbooks(sources []Source) (*Result, error) {
	result := &Result{}

	for _, src := range sources {
		dataset, err := parseWorkbook(src.Data)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"source": src.Name,
				"error":  err.Error(),
			}).Warn("ingesting: workbook failed to parse, skipping source")

			result.Failures = append(result.Failures, NewSourceError(src.Name, err))
			continue
		}

		if result.Dataset == nil {
			result.Dataset = dataset
		} else {
			result.Dataset.Append(dataset)
		}
	}

	if result.Dataset.IsEmpty() {
		return result, ErrNoData
	}

	logrus.WithFields(logrus.Fields{
		"sources": len(sources),
		"failed":  len(result.Failures),
		"records": len(result.Dataset.Rows),
	}).Info("ingesting: workbooks combined")

	return result, nil
}

// IngestFieldbook parses a tab-delimited grid paste, applying the cashout
// splice rule for three-line records.
func (s *Service) IngestFieldbook(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPaste
	}

	dataset, skipped := parseFieldbook(text)
	result := &Result{Dataset: dataset, SkippedRows: skipped}

	if dataset.IsEmpty() {
		return result, ErrNoData
	}

	if skipped > 0 {
		logrus.WithField("skipped_rows", skipped).Warn("ingesting: malformed fieldbook rows dropped")
	}

	logrus.WithFields(logrus.Fields{
		"records":      len(dataset.Rows),
		"skipped_rows": skipped,
	}).Info("ingesting: fieldbook paste parsed")

	return result, nil
}
