package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/PhucNguyen204/LineCheck_V2/internal/suites"
	"github.com/PhucNguyen204/LineCheck_V2/pkg/checkfile"
	"github.com/PhucNguyen204/LineCheck_V2/pkg/verify"
)

// AppServer exposes the verification engine over HTTP and persists run
// verdicts in Postgres.
type AppServer struct {
	db  *sql.DB
	mu  sync.RWMutex // protects cfg swap
	cfg verify.Config

	totalRequests  atomic.Uint64
	totalRuns      atomic.Uint64
	totalPasses    atomic.Uint64
	totalFailures  atomic.Uint64
	prefilterSkips atomic.Uint64
}

func NewAppServer(db *sql.DB, cfg verify.Config) *AppServer {
	return &AppServer{db: db, cfg: cfg}
}

// RegisterRoutes wires HTTP handlers.
func (s *AppServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/verify", s.handleVerify)
	mux.HandleFunc("/api/v1/runs", s.handleListRuns)
}

func (s *AppServer) currentConfig() verify.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SwapConfig replaces the engine configuration for subsequent runs.
func (s *AppServer) SwapConfig(cfg verify.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// ---- Handlers ----

func (s *AppServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *AppServer) handleStats(w http.ResponseWriter, r *http.Request) {
	type statsResp struct {
		TotalRequests  uint64 `json:"total_requests"`
		TotalRuns      uint64 `json:"total_runs"`
		TotalPasses    uint64 `json:"total_passes"`
		TotalFailures  uint64 `json:"total_failures"`
		PrefilterSkips uint64 `json:"prefilter_skips"`
	}
	writeJSON(w, http.StatusOK, statsResp{
		TotalRequests:  s.totalRequests.Load(),
		TotalRuns:      s.totalRuns.Load(),
		TotalPasses:    s.totalPasses.Load(),
		TotalFailures:  s.totalFailures.Load(),
		PrefilterSkips: s.prefilterSkips.Load(),
	})
}

// handleVerify compiles the posted check text and runs it against the posted
// input. A failing verification is a valid result and returns 200; only a
// check file that cannot be compiled is a 400.
func (s *AppServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	s.totalRequests.Add(1)
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Name  string `json:"name"`
		Check string `json:"check"`
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err))
		return
	}
	if req.Check == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("missing check text"))
		return
	}

	cf, err := checkfile.Parse(req.Name, []byte(req.Check))
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	verdict := verify.Compile(cf, s.currentConfig()).Verify(req.Input)

	s.recordRun(req.Name, verdict)
	if err := s.insertRun(r.Context(), req.Name, verdict); err != nil {
		log.Printf("persist run: %v", err)
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (s *AppServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	runs, err := s.listRuns(r.Context(), limit)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// ---- Suites ----

// RunSuitesFromDir loads every manifest under dir, runs all cases, and
// persists the verdicts. Returns (passed, failed, broken).
func (s *AppServer) RunSuitesFromDir(ctx context.Context, dir string) (int, int, int, error) {
	loaded, err := suites.LoadDirRecursive(dir)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("load suites: %w", err)
	}
	passed, failed, broken := 0, 0, 0
	cfg := s.currentConfig()
	for _, ls := range loaded {
		for _, res := range suites.Run(ls, cfg) {
			name := ls.Suite.Name + "/" + res.Case
			if res.Err != nil {
				broken++
				log.Printf("suite %s: %v", name, res.Err)
				continue
			}
			s.recordRun(name, res.Verdict)
			if err := s.insertRun(ctx, name, res.Verdict); err != nil {
				log.Printf("persist run %s: %v", name, err)
			}
			if res.Verdict.Pass {
				passed++
			} else {
				failed++
				log.Printf("suite %s FAILED: %s", name, res.Verdict.Failure)
			}
		}
	}
	return passed, failed, broken, nil
}

func (s *AppServer) recordRun(name string, v verify.Verdict) {
	s.totalRuns.Add(1)
	if v.Pass {
		s.totalPasses.Add(1)
	} else {
		s.totalFailures.Add(1)
	}
	s.prefilterSkips.Add(uint64(v.PrefilterSkips))
}

// ---- Helpers ----

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON error: %v", err)
	}
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"error": err.Error()})
}
