// Package server exposes body lookups over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/julienschmidt/httprouter"

	"github.com/oxygene76/celestial-lookup/internal/types"
	"github.com/oxygene76/celestial-lookup/pkg/analysis"
	"github.com/oxygene76/celestial-lookup/pkg/astronomy/format"
	"github.com/oxygene76/celestial-lookup/pkg/catalog"
	"github.com/oxygene76/celestial-lookup/pkg/lookup"
)

// Service is what the handlers need from a lookup pipeline.
type Service interface {
	Lookup(ctx context.Context, name string) (*types.LookupReport, error)
	Catalog() *catalog.Catalog
}

// Server serves the lookup API
type Server struct {
	service Service
	metrics *Metrics
	logger  log.Logger
}

// New creates a server. metrics may be nil, in which case /metrics is not
// routed.
func New(service Service, metrics *Metrics, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Server{service: service, metrics: metrics, logger: logger}
}

// Routes returns the HTTP handler for every endpoint.
func (s *Server) Routes() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.sendError(w, http.StatusNotFound, "resource not found")
	})

	router.HandlerFunc(http.MethodGet, "/healthz", s.healthHandler)
	router.HandlerFunc(http.MethodGet, "/api/bodies", s.bodiesHandler)
	router.HandlerFunc(http.MethodGet, "/api/bodies/:name", s.bodyHandler)
	router.HandlerFunc(http.MethodGet, "/api/bodies/:name/quantities/:key", s.quantityHandler)
	router.HandlerFunc(http.MethodGet, "/api/compare", s.compareHandler)
	if s.metrics != nil {
		router.Handler(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) bodiesHandler(w http.ResponseWriter, r *http.Request) {
	entries := s.service.Catalog().Entries()
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if strings.EqualFold(e.Kind, kind) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	s.sendJSON(w, http.StatusOK, map[string]any{"bodies": entries})
}

func (s *Server) bodyHandler(w http.ResponseWriter, r *http.Request) {
	name := httprouter.ParamsFromContext(r.Context()).ByName("name")

	report, err := s.service.Lookup(r.Context(), name)
	if err != nil {
		s.sendLookupError(w, r, err)
		return
	}
	s.sendJSON(w, http.StatusOK, report)
}

func (s *Server) quantityHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	report, err := s.service.Lookup(r.Context(), params.ByName("name"))
	if err != nil {
		s.sendLookupError(w, r, err)
		return
	}
	key := params.ByName("key")
	if value, ok := report.Quantity(key); ok {
		s.sendJSON(w, http.StatusOK, value)
		return
	}

	// not in the display order, render it on demand
	q, err := lookup.QuantityByKey(key)
	if err != nil {
		s.sendLookupError(w, r, err)
		return
	}
	rendered := format.Render([]format.Entry{{
		Key:   q.Key,
		Name:  q.Name,
		Unit:  q.Unit,
		Value: q.Value(report.Normalized, report.Derived),
	}})
	s.sendJSON(w, http.StatusOK, rendered[0])
}

// compareHandler serves /api/compare?bodies=Earth,Mars&quantity=mass
func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var names []string
	for _, name := range strings.Split(query.Get("bodies"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	key := query.Get("quantity")
	if len(names) == 0 || key == "" {
		s.sendError(w, http.StatusBadRequest, "bodies and quantity are required")
		return
	}

	reports, err := analysis.Collect(r.Context(), s.service, names)
	if err != nil {
		s.sendLookupError(w, r, err)
		return
	}
	summary, err := analysis.Compare(reports, key)
	if err != nil {
		s.sendLookupError(w, r, err)
		return
	}
	s.sendJSON(w, http.StatusOK, summary)
}
