package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/openclaw/newsroom/internal/config"
	"github.com/openclaw/newsroom/internal/database"
	"github.com/openclaw/newsroom/internal/logger"
	"github.com/openclaw/newsroom/internal/metrics"
	"github.com/openclaw/newsroom/internal/render"
)

// Server is the JSON API over the report index.
type Server struct {
	db     *database.DB
	cfg    *config.Config
	log    zerolog.Logger
	router *chi.Mux
}

// New creates a new Server.
func New(db *database.DB, cfg *config.Config) *Server {
	s := &Server{
		db:     db,
		cfg:    cfg,
		log:    logger.New("server"),
		router: chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.observe)

	s.routes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/dates", s.handleDates)
		r.Get("/reports/{date}", s.handleReportsForDate)
		r.Get("/map-data", s.handleMapData)
		r.Get("/search", s.handleSearch)
		r.Get("/entity/{name}", s.handleEntity)
		r.Get("/related/{id}", s.handleRelated)
		r.Get("/top-entities", s.handleTopEntities)
		r.Get("/source-stats", s.handleSourceStats)
		r.Get("/stats", s.handleStats)
		r.Get("/status", s.handleStatus)
	})
}

// observe counts and logs every request by route pattern and status.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		s.log.Debug().
			Str("route", route).
			Str("method", r.Method).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.db.SchemaVersion(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.db.GetDates()
	if err != nil {
		s.internalError(w, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, dates)
}

type reportView struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	HTML  string `json:"html"`
}

type reportGroup struct {
	Category string       `json:"category"`
	Reports  []reportView `json:"reports"`
}

type reportsResponse struct {
	Groups  []reportGroup   `json:"groups"`
	Markers []render.Marker `json:"markers"`
}

func (s *Server) handleReportsForDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	summaries, err := s.db.GetReportsForDate(date)
	if err != nil {
		if errors.Is(err, database.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, err)
		return
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slug < summaries[j].Slug })

	groups := make(map[string][]reportView)
	orders := make(map[string]int)
	markers := []render.Marker{}

	for _, sum := range summaries {
		report, err := s.db.GetReport(date, sum.Slug)
		if err != nil {
			s.internalError(w, err)
			return
		}
		if report == nil {
			continue
		}
		html, err := render.Markdown(report.Content)
		if err != nil {
			s.internalError(w, err)
			return
		}

		label := render.Label(sum.Slug)
		category, order := render.Category(sum.Slug)
		groups[category] = append(groups[category], reportView{Slug: sum.Slug, Label: label, HTML: html})
		if _, ok := orders[category]; !ok {
			orders[category] = order
		}
		markers = append(markers, render.GeoMarkers(report.Content, label)...)
	}

	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return orders[categories[i]] < orders[categories[j]] })

	resp := reportsResponse{Groups: []reportGroup{}, Markers: markers}
	for _, category := range categories {
		resp.Groups = append(resp.Groups, reportGroup{Category: category, Reports: groups[category]})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMapData(w http.ResponseWriter, r *http.Request) {
	dates, err := s.db.GetDates()
	if err != nil {
		s.internalError(w, err)
		return
	}
	if len(dates) == 0 {
		writeJSON(w, http.StatusOK, []render.CountryMarkers{})
		return
	}
	date := dates[0]

	summaries, err := s.db.GetReportsForDate(date)
	if err != nil {
		s.internalError(w, err)
		return
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slug < summaries[j].Slug })

	var markers []render.Marker
	for _, sum := range summaries {
		report, err := s.db.GetReport(date, sum.Slug)
		if err != nil {
			s.internalError(w, err)
			return
		}
		if report == nil {
			continue
		}
		markers = append(markers, render.GeoMarkers(report.Content, render.Label(sum.Slug))...)
	}

	grouped := render.AggregateCountries(markers)
	if grouped == nil {
		grouped = []render.CountryMarkers{}
	}
	writeJSON(w, http.StatusOK, grouped)
}

type searchResponse struct {
	Query   string                  `json:"query"`
	Count   int                     `json:"count"`
	Results []database.SearchResult `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := clampInt(r.URL.Query().Get("limit"), s.cfg.Search.DefaultLimit, s.cfg.Search.MaxLimit)

	metrics.SearchQueries.Inc()
	results, err := s.db.Search(query, limit)
	if err != nil {
		if errors.Is(err, database.ErrQueryTooShort) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, err)
		return
	}
	if results == nil {
		results = []database.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Count: len(results), Results: results})
}

type entityResponse struct {
	Entity      string                      `json:"entity"`
	Count       int                         `json:"count"`
	Appearances []database.EntityAppearance `json:"appearances"`
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	appearances, err := s.db.FindConnections(name)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if appearances == nil {
		appearances = []database.EntityAppearance{}
	}
	writeJSON(w, http.StatusOK, entityResponse{
		Entity:      strings.ToLower(strings.TrimSpace(name)),
		Count:       len(appearances),
		Appearances: appearances,
	})
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid report id"})
		return
	}
	limit := clampInt(r.URL.Query().Get("limit"), s.cfg.Search.DefaultLimit, s.cfg.Search.MaxLimit)

	related, err := s.db.RelatedReports(id, limit)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if related == nil {
		related = []database.RelatedReport{}
	}
	writeJSON(w, http.StatusOK, related)
}

func (s *Server) handleTopEntities(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	limit := clampInt(r.URL.Query().Get("limit"), s.cfg.Search.DefaultLimit, s.cfg.Search.MaxLimit)

	entities, err := s.db.TopEntities(date, limit)
	if err != nil {
		if errors.Is(err, database.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, err)
		return
	}
	if entities == nil {
		entities = []database.EntityCount{}
	}
	writeJSON(w, http.StatusOK, entities)
}

func (s *Server) handleSourceStats(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))

	stats, err := s.db.SourceStats(date)
	if err != nil {
		if errors.Is(err, database.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.internalError(w, err)
		return
	}
	if stats == nil {
		stats = []database.SourceStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats()
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type statusResponse struct {
	SchemaVersion int                 `json:"schema_version"`
	LastRun       *database.IngestRun `json:"last_run"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	version, err := s.db.SchemaVersion()
	if err != nil {
		s.internalError(w, err)
		return
	}
	run, err := s.db.LastIngestRun()
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{SchemaVersion: version, LastRun: run})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

// Serve runs the API server until ctx is cancelled, then drains in-flight
// requests before returning.
func Serve(ctx context.Context, db *database.DB, cfg *config.Config) error {
	s := New(db, cfg)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", cfg.Addr()).Msg("api server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
