package http

import (
	"net/http"
	"sort"
	"time"

	"txboard/internal/charts"
	"txboard/internal/core"
	applog "txboard/internal/log"
)

// render executes a named template, failing closed when template parsing
// failed at startup instead of nil-panicking per handler.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "templates not loaded",
			applog.FieldRequestID, requestIDFromContext(r.Context()))
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "template render failed",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleIndex renders the dashboard page shell; the widgets on it pull their
// own data from the partial and series endpoints.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	snap := s.store.Snapshot()
	data := struct {
		SnapshotID string
		Source     string
		LoadedAt   string
		Rows       int
	}{
		SnapshotID: snap.ID,
		Source:     snap.Source,
		LoadedAt:   snap.LoadedAt.Format("Jan 2, 2006 15:04"),
		Rows:       len(snap.Transactions),
	}
	s.render(w, r, "dashboard.html", data)
}

// chartHandler memoizes one chart builder per snapshot and serves it as JSON.
func (s *Server) chartHandler(name string, build func([]core.Transaction) charts.Series) http.HandlerFunc {
	return s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodGet) {
			return
		}
		snap := s.store.Snapshot()
		key := snap.ID + "/" + name

		series, hit := s.seriesCache.Get(key)
		if !hit {
			series = build(snap.Transactions)
			s.seriesCache.Set(key, series)
		}
		s.logger.DebugContext(r.Context(), "chart served",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldChart, name,
			applog.FieldSnapshot, snap.ID,
			applog.FieldCacheHit, hit)

		if err := writeJSON(w, http.StatusOK, series); err != nil {
			s.logger.ErrorContext(r.Context(), "chart encode failed",
				applog.FieldChart, name, applog.FieldError, err)
		}
	})
}

// handleSummaryCards renders the stat-card partial.
func (s *Server) handleSummaryCards(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	snap := s.store.Snapshot()

	cards, hit := s.summaryCache.Get(snap.ID)
	if !hit {
		cards = charts.BuildSummaryCards(snap.Transactions)
		s.summaryCache.Set(snap.ID, cards)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.render(w, r, "summary_cards", cards)
}

// handleRecentTransactions renders the latest rows as an HTML table partial.
func (s *Server) handleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	snap := s.store.Snapshot()

	recent := make([]core.Transaction, len(snap.Transactions))
	copy(recent, snap.Transactions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Created.After(recent[j].Created)
	})
	if len(recent) > 10 {
		recent = recent[:10]
	}

	type txView struct {
		ID          string
		Type        string
		Description string
		Amount      string
		Currency    string
		Date        string
	}
	views := make([]txView, 0, len(recent))
	for _, tx := range recent {
		date := ""
		if tx.HasCreated() {
			date = tx.Created.Format("Jan 2 15:04")
		}
		views = append(views, txView{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Description: tx.Description,
			Amount:      core.FormatUSD(tx.Amount),
			Currency:    tx.Currency,
			Date:        date,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Transactions []txView }{Transactions: views}
	s.render(w, r, "recent_transactions", data)
}

// handleMeta reports the current snapshot.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	snap := s.store.Snapshot()
	_ = writeJSON(w, http.StatusOK, struct {
		SnapshotID string    `json:"snapshot_id"`
		Source     string    `json:"source"`
		LoadedAt   time.Time `json:"loaded_at"`
		Rows       int       `json:"rows"`
	}{snap.ID, snap.Source, snap.LoadedAt, len(snap.Transactions)})
}

// handleRefresh re-ingests the dataset and invalidates every memoized
// payload. The same synchronous pipeline as startup, on demand.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	snap, err := s.store.Refresh(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "refresh failed",
			applog.FieldRequestID, requestIDFromContext(r.Context()),
			applog.FieldOperation, applog.OpRefresh, applog.FieldError, err)
		_ = writeJSON(w, http.StatusBadGateway, map[string]string{"error": "refresh failed"})
		return
	}

	s.seriesCache.Flush()
	s.summaryCache.Flush()

	_ = writeJSON(w, http.StatusOK, struct {
		SnapshotID string `json:"snapshot_id"`
		Rows       int    `json:"rows"`
	}{snap.ID, len(snap.Transactions)})
}
