// Package dashboard exposes the simulation engine over HTTP for reactive
// front ends. It returns plain structured data; all rendering is the
// client's responsibility.
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
	"github.com/zerodeltainc/monte-carlo/internal/observability"
	"github.com/zerodeltainc/monte-carlo/internal/orchestrator"
	"github.com/zerodeltainc/monte-carlo/internal/reporting"
)

// DefaultMaxTrials caps request size so a single call cannot pin the
// process. Requests above the cap are rejected, not clamped.
const DefaultMaxTrials = 10000

// Server handles dashboard API requests.
type Server struct {
	engine    *orchestrator.Orchestrator
	metrics   *observability.Metrics
	logger    *log.Logger
	maxTrials int
}

// Options contains configuration for creating a Server.
type Options struct {
	// Workers is the trial worker count passed to the batch runner.
	Workers int
	// MaxTrials caps NumTrials per request; 0 uses DefaultMaxTrials.
	MaxTrials int
	// Metrics is optional instrumentation; nil disables it.
	Metrics *observability.Metrics
	// Logger defaults to a stderr logger when nil.
	Logger *log.Logger
}

// New creates a dashboard server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[dashboard] ", log.LstdFlags)
	}
	maxTrials := opts.MaxTrials
	if maxTrials <= 0 {
		maxTrials = DefaultMaxTrials
	}

	return &Server{
		engine:    orchestrator.New(orchestrator.Options{Workers: opts.Workers, Metrics: opts.Metrics}),
		metrics:   opts.Metrics,
		logger:    logger,
		maxTrials: maxTrials,
	}
}

// Routes returns the HTTP mux with all endpoints registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/simulate", s.handleSimulate)
	mux.HandleFunc("/ws/simulate", s.handleStream)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", observability.Handler())
	return mux
}

// SimulateResponse is the full payload returned by POST /api/simulate.
// EquityCurve and MovingAverage describe the first trial, for charting.
type SimulateResponse struct {
	Report        *reporting.Report `json:"report"`
	EquityCurve   []float64         `json:"equity_curve"`
	MovingAverage []float64         `json:"moving_average"`
}

// handleSimulate runs a full simulation for a JSON-encoded config.
// Fields omitted from the request body keep the historical defaults.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := domain.DefaultConfig()
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		s.requestError(w, "decode", http.StatusBadRequest, fmt.Errorf("decode config: %w", err))
		return
	}

	resp, err := s.simulate(r, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			status = http.StatusBadRequest
		}
		s.requestError(w, "simulate", status, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Printf("encode response: %v", err)
	}
}

// simulate executes the engine for one request and assembles the payload.
func (s *Server) simulate(r *http.Request, cfg domain.SimulationConfig) (*SimulateResponse, error) {
	if cfg.NumTrials > s.maxTrials {
		return nil, fmt.Errorf("%w: num_trials %d exceeds server limit %d",
			domain.ErrInvalidConfiguration, cfg.NumTrials, s.maxTrials)
	}

	run, err := s.engine.Run(r.Context(), cfg)
	if err != nil {
		return nil, err
	}
	curve := run.Trials[0].EquityCurve

	return &SimulateResponse{
		Report:        run.Report,
		EquityCurve:   curve,
		MovingAverage: reporting.MovingAverage(curve, cfg.MovingAverageWindow),
	}, nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// requestError writes an error payload and counts it.
func (s *Server) requestError(w http.ResponseWriter, kind string, status int, err error) {
	if s.metrics != nil {
		s.metrics.RequestErrors.WithLabelValues(kind).Inc()
	}
	s.logger.Printf("%s error: %v", kind, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
