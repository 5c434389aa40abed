package handler

import (
	"io"
	"net/http"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/oddsdesk/bet-metrics-api/infrastructure/datastore"
	"github.com/oddsdesk/bet-metrics-api/internal/config"
	"github.com/oddsdesk/bet-metrics-api/internal/domain"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/ingesting"
	"github.com/oddsdesk/bet-metrics-api/pkg/apiErrors"
	"github.com/oddsdesk/bet-metrics-api/pkg/log"
	"github.com/oddsdesk/bet-metrics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UploadDatasets ingests one or more spreadsheet files from a multipart
// form and stores the combined dataset under a fresh dataset ID.
func UploadDatasets(cfg *config.Config, ingester ingesting.Ingester, store datastore.DatasetStore) http.Handler {
	maxBytes := cfg.Datasets.MaxUploadMB << 20

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			logger.WithError(err).Warn("datasets: invalid multipart form")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid multipart form or upload too large", nil)
			return
		}

		files := r.MultipartForm.File["files"]
		if len(files) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "at least one file is required in the 'files' field", nil)
			return
		}

		var sources []ingesting.Source
		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				logger.WithFields(log.Fields{
					"filename": header.Filename,
					"error":    err.Error(),
				}).Warn("datasets: could not open uploaded file")

				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "could not read uploaded file: "+header.Filename, nil)
				return
			}

			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "could not read uploaded file: "+header.Filename, nil)
				return
			}

			sources = append(sources, ingesting.Source{Name: header.Filename, Data: data})
		}

		result, err := ingester.IngestWorkbooks(sources)
		if err != nil {
			handleIngestError(w, logger, result, err)
			return
		}

		storeResult(w, logger, store, result)
	})
}

// PasteDataset ingests a clipboard fieldbook paste.
func PasteDataset(ingester ingesting.Ingester, store datastore.DatasetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		result, err := ingester.IngestFieldbook(req.Text)
		if err != nil {
			handleIngestError(w, logger, result, err)
			return
		}

		storeResult(w, logger, store, result)
	})
}

// GetDataset returns the summary of a stored dataset, which the UI uses to
// populate its market, selection and date-range pickers.
func GetDataset(store datastore.DatasetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		entry, ok := store.Get(id)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, "dataset not found or expired", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summarize(entry))
	})
}

// DeleteDataset evicts a stored dataset before its TTL.
func DeleteDataset(store datastore.DatasetStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		store.Delete(id)
		w.WriteHeader(http.StatusNoContent)
	})
}

// storeResult saves a successful ingestion under a new dataset ID and
// responds with the dataset summary.
func storeResult(w http.ResponseWriter, logger log.Logger, store datastore.DatasetStore, result *ingesting.Result) {
	id, err := utils.GenerateID()
	if err != nil {
		logger.WithError(err).Error("datasets: could not generate dataset ID")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "could not store dataset", nil)
		return
	}

	entry := &datastore.Entry{
		ID:          id,
		Dataset:     result.Dataset,
		SkippedRows: result.SkippedRows,
		Failures:    failureMessages(result),
		CreatedAt:   time.Now(),
	}
	store.Save(entry)

	logger.WithFields(log.Fields{
		"dataset_id": id,
		"records":    len(result.Dataset.Rows),
	}).Info("datasets: dataset ingested and stored")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(summarize(entry))
}

func handleIngestError(w http.ResponseWriter, logger log.Logger, result *ingesting.Result, err error) {
	switch {
	case errors.Is(err, ingesting.ErrEmptyPaste):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "pasted text contains no rows", nil)

	case errors.Is(err, ingesting.ErrNoData):
		apiErrors.WriteError(w, apiErrors.ErrNoData, "no usable records in any source", failureMessages(result))

	default:
		logger.WithError(err).Error("datasets: unexpected ingestion failure")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "error ingesting data", nil)
	}
}

func failureMessages(result *ingesting.Result) []string {
	if result == nil || len(result.Failures) == 0 {
		return nil
	}

	messages := make([]string, 0, len(result.Failures))
	for _, failure := range result.Failures {
		messages = append(messages, failure.Error())
	}
	return messages
}

// summarize derives the filter-picker metadata from a stored dataset:
// distinct markets, selections per market and the struck-at time range.
func summarize(entry *datastore.Entry) domain.DatasetSummary {
	dataset := entry.Dataset

	summary := domain.DatasetSummary{
		ID:          entry.ID,
		Records:     len(dataset.Rows),
		Columns:     dataset.Columns,
		SkippedRows: entry.SkippedRows,
		Failures:    entry.Failures,
	}

	if _, ok := dataset.Schema.Column(domain.FieldMarket); ok {
		selections := make(map[string][]string)
		seen := make(map[string]map[string]bool)

		for _, row := range dataset.Rows {
			market := dataset.Value(row, domain.FieldMarket)
			if market == "" {
				continue
			}
			if seen[market] == nil {
				seen[market] = make(map[string]bool)
				summary.Markets = append(summary.Markets, market)
			}
			if selection := dataset.Value(row, domain.FieldSelection); selection != "" && !seen[market][selection] {
				seen[market][selection] = true
				selections[market] = append(selections[market], selection)
			}
		}

		sort.Strings(summary.Markets)
		for _, values := range selections {
			sort.Strings(values)
		}
		if len(selections) > 0 {
			summary.Selections = selections
		}
	}

	if _, ok := dataset.Schema.Column(domain.FieldStruckAt); ok {
		for _, row := range dataset.Rows {
			struckAt, err := utils.ParseTimestamp(dataset.Value(row, domain.FieldStruckAt))
			if err != nil {
				continue
			}
			if summary.StruckFrom == nil || struckAt.Before(*summary.StruckFrom) {
				t := struckAt
				summary.StruckFrom = &t
			}
			if summary.StruckUntil == nil || struckAt.After(*summary.StruckUntil) {
				t := struckAt
				summary.StruckUntil = &t
			}
		}
	}

	return summary
}
