// Package http serves the analytics dashboard: the page shell, HTML summary
// partials, and the JSON series endpoints the embedded Chart.js front-end
// consumes.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"txboard/internal/cache"
	"txboard/internal/charts"
	"txboard/internal/dataset"
	applog "txboard/internal/log"
	"txboard/web"
)

// Server wires routes, templates and the chart-payload caches around a
// dataset store.
type Server struct {
	http.Server

	store     *dataset.Store
	templates *template.Template
	logger    *applog.Logger

	rateLimiter *rateLimiter

	// Computed payloads are memoized per snapshot: keys carry the snapshot
	// ID, and a refresh flushes both caches outright.
	seriesCache  cache.Cache[charts.Series]
	summaryCache cache.Cache[charts.SummaryCards]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Options tunes the server; zero values get sensible defaults.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Logger    *applog.Logger
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, store *dataset.Store, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.ComponentHTTP, applog.Options{})
	}

	seriesCache := cache.New[charts.Series](opts.CacheSize, opts.CacheTTL)
	summaryCache := cache.New[charts.SummaryCards](opts.CacheSize, opts.CacheTTL)

	mux := http.NewServeMux()
	s := &Server{
		Server:       http.Server{Addr: addr, Handler: mux},
		store:        store,
		logger:       logger.WithComponent(applog.ComponentHTTP),
		rateLimiter:  newRateLimiter(),
		seriesCache:  seriesCache,
		summaryCache: summaryCache,
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(seriesCache)
	s.cacheManager.Register(summaryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	t, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(web.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.withMiddleware(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/refresh", s.withMiddleware(s.handleRefresh))

	// UI partials
	mux.HandleFunc("/ui/summary", s.withMiddleware(s.handleSummaryCards))
	mux.HandleFunc("/ui/transactions", s.withMiddleware(s.handleRecentTransactions))

	// Chart series for the front-end
	mux.HandleFunc("/api/meta", s.withMiddleware(s.handleMeta))
	mux.HandleFunc("/api/charts/daily", s.chartHandler("daily", charts.DailyVolume))
	mux.HandleFunc("/api/charts/hourly", s.chartHandler("hourly", charts.HourlyActivity))
	mux.HandleFunc("/api/charts/weekday", s.chartHandler("weekday", charts.WeekdayActivity))
	mux.HandleFunc("/api/charts/monthly", s.chartHandler("monthly", charts.MonthlyTrend))
	mux.HandleFunc("/api/charts/currency", s.chartHandler("currency", charts.CurrencyMix))
	mux.HandleFunc("/api/charts/values", s.chartHandler("values", charts.ValueDistribution))
	mux.HandleFunc("/api/charts/latency", s.chartHandler("latency", charts.LatencyDistribution))
	mux.HandleFunc("/api/charts/speed", s.chartHandler("speed", charts.SettlementSpeed))
	mux.HandleFunc("/api/charts/peak", s.chartHandler("peak", charts.PeakDays))

	return s
}

// Shutdown stops background cleanup and then the HTTP server, exactly once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports ready once a snapshot has been loaded.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.store.Snapshot().ID == "" {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no dataset"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
