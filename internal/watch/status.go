package watch

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/nmcr/internal/catalog"
	ferrors "git.home.luguber.info/inful/nmcr/internal/foundation/errors"
	"git.home.luguber.info/inful/nmcr/internal/logfields"
	"git.home.luguber.info/inful/nmcr/internal/metrics"
)

// Status tracks the latest load. The last good catalog stays available
// after a failed reload.
type Status struct {
	mu       sync.RWMutex
	catalog  *catalog.Catalog
	lastErr  error
	loads    int
	lastLoad time.Time
}

// Snapshot is the JSON body of the /status endpoint.
type Snapshot struct {
	LoadID   string    `json:"load_id,omitempty"`
	Files    int       `json:"files"`
	Trees    int       `json:"trees"`
	Skipped  int       `json:"skipped"`
	Loads    int       `json:"loads"`
	LastLoad time.Time `json:"last_load"`
	Healthy  bool      `json:"healthy"`
}

func (s *Status) record(cat *catalog.Catalog, err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	s.lastLoad = at
	s.lastErr = err
	if err == nil {
		s.catalog = cat
	}
}

// Catalog returns the last catalog that loaded successfully, or nil.
func (s *Status) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Err returns the error of the latest load, nil when it succeeded.
func (s *Status) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Status) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Loads: s.loads, LastLoad: s.lastLoad, Healthy: s.lastErr == nil && s.catalog != nil}
	if s.catalog != nil {
		snap.LoadID = s.catalog.LoadID()
		snap.Files = len(s.catalog.StandaloneFiles())
		snap.Trees = len(s.catalog.TreeTemplates())
		snap.Skipped = len(s.catalog.Skipped())
	}
	return snap
}

// Handler serves /status and, when reg is non-nil, /metrics.
func (w *Watcher) Handler(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	adapter := ferrors.NewHTTPErrorAdapter(w.logger)
	mux.HandleFunc("/status", func(rw http.ResponseWriter, r *http.Request) {
		if err := w.status.Err(); err != nil {
			adapter.WriteErrorResponse(rw, r, err)
			return
		}
		writeJSON(rw, w.status.Snapshot())
	})
	if reg != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
	}
	return mux
}

func writeJSON(rw http.ResponseWriter, v any) {
	rw.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(rw).Encode(v); err != nil {
		slog.Error("failed writing JSON response body", logfields.Error(err))
	}
}
