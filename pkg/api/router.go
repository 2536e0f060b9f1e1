package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/cases"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/maintenance"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/metrics"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/readmodel"
	"github.com/coolguazitech/network-dashboard-sub002/pkg/syslog"
)

// Deps bundles every service the router dispatches to. cmd/maintcore
// constructs one of these after wiring the scheduler.
type Deps struct {
	Maintenances *maintenance.Service
	Cases        *cases.Service
	Dashboard    *readmodel.DashboardService
	RawData      *readmodel.RawDataService
	Lists        *ListsService
	Expectations *ExpectationsService
	Thresholds   *ThresholdsService
	Logs         *syslog.Sink
	Logger       *zap.Logger
}

// NewRouter builds spec.md §6.2's downstream HTTP contract surface.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "X-User-Name", "X-User-Role"},
		AllowCredentials: false,
	}))
	r.Use(principalMiddleware, requestLoggingMiddleware(deps.Logs, deps.Logger))

	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	h := &handlers{deps: deps}

	r.Route("/api", func(r chi.Router) {
		r.Route("/maintenances", func(r chi.Router) {
			r.Get("/", h.listMaintenances)
			r.Post("/", h.createMaintenance)
			r.Delete("/{id}", h.deleteMaintenance)
		})

		r.Get("/dashboard/summary", h.dashboardSummary)

		r.Route("/indicators/{name}", func(r chi.Router) {
			r.Get("/rawdata", h.indicatorRawData)
			r.Get("/timeseries", h.indicatorTimeseries)
		})

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", h.listCases)
			r.Get("/stats", h.caseStats)
			r.Post("/sync", h.syncCases)
			r.Get("/{id}", h.caseDetail)
			r.Put("/{id}", h.updateCase)
			r.Get("/{id}/changes/{attribute}", h.changeTimeline)
			r.Post("/{id}/notes", h.addNote)
			r.Put("/{id}/notes/{noteID}", h.updateNote)
			r.Delete("/{id}/notes/{noteID}", h.deleteNote)
		})

		r.Route("/device-list", func(r chi.Router) {
			r.Get("/", h.listDeviceEntries)
			r.Post("/", h.createDeviceEntry)
			r.Put("/{id}", h.updateDeviceEntry)
			r.Delete("/{id}", h.deleteDeviceEntry)
			r.Post("/import", h.importDeviceList)
		})

		r.Route("/mac-list", func(r chi.Router) {
			r.Get("/", h.listMacEntries)
			r.Post("/", h.createMacEntry)
			r.Put("/{id}", h.updateMacEntry)
			r.Delete("/{id}", h.deleteMacEntry)
			r.Post("/import", h.importMacList)
		})

		r.Post("/thresholds", h.setThresholdOverride)

		r.Route("/expectations/{kind}", func(r chi.Router) {
			r.Get("/", h.listExpectations)
			r.Post("/", h.createExpectation)
			r.Delete("/{id}", h.deleteExpectation)
		})
	})

	return r
}

type handlers struct {
	deps Deps
}
