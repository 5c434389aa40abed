package handler

import (
	"net/http"

	"github.com/oddsdesk/bet-metrics-api/infrastructure/datastore"
	"github.com/oddsdesk/bet-metrics-api/internal/api/handler/router"
	"github.com/oddsdesk/bet-metrics-api/internal/config"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/analyzing"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/authenticating"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/ingesting"
	"github.com/oddsdesk/bet-metrics-api/internal/usecases/normalizing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Datasets(cfg *config.Config, ingester ingesting.Ingester, store datastore.DatasetStore) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/datasets",
			Method:  http.MethodPost,
			Handler: UploadDatasets(cfg, ingester, store),
		},
		{
			// Separate top-level path: httprouter cannot mix a static
			// segment with the :id wildcard under /v1/datasets.
			Path:    "/v1/pastes",
			Method:  http.MethodPost,
			Handler: PasteDataset(ingester, store),
		},
		{
			Path:    "/v1/datasets/:id",
			Method:  http.MethodGet,
			Handler: GetDataset(store),
		},
		{
			Path:    "/v1/datasets/:id",
			Method:  http.MethodDelete,
			Handler: DeleteDataset(store),
		},
	}
}

func Analysis(analyzer analyzing.Analyzer, store datastore.DatasetStore) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/datasets/:id/analysis",
			Method:  http.MethodPost,
			Handler: AnalyzeDataset(analyzer, store),
		},
	}
}

func Incidents(normalizer normalizing.Normalizer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/incidents/normalize",
			Method:  http.MethodPost,
			Handler: NormalizeIncident(normalizer),
		},
	}
}
