package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rzbill/usher/internal/runtime"
	seatsvc "github.com/rzbill/usher/internal/services/seats"
	"github.com/rzbill/usher/pkg/id"
	logpkg "github.com/rzbill/usher/pkg/log"
)

type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	seats  *seatsvc.Service
	logger logpkg.Logger
	ids    *id.Generator
}

// New builds a Server with its own seats service.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	return NewWithService(rt, seatsvc.NewWithLogger(rt, logger), logger)
}

// NewWithService builds a Server around a shared seats service instance.
func NewWithService(rt *runtime.Runtime, seats *seatsvc.Service, logger logpkg.Logger) *Server {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("http"))
	}
	mux := http.NewServeMux()
	s := &Server{rt: rt, seats: seats, logger: logger, ids: id.NewGenerator()}
	s.srv = &http.Server{Handler: cors(s.withRequestID(mux))}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/seats/reserve", s.handleReserve)
	mux.HandleFunc("/v1/seats/reserve-exact", s.handleReserveExact)
	mux.HandleFunc("/v1/seats/occupancy/{zone}/{row}", s.handleOccupancy)
	mux.HandleFunc("/v1/seats/availability", s.handleAvailability)
	mux.HandleFunc("/v1/seats/initialize", s.handleInitialize)
	mux.HandleFunc("/v1/seats/reset", s.handleReset)
	mux.HandleFunc("/v1/stats", s.handleStats)
	return s
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestID tags every request with a sortable request id, echoes it on
// the response, and logs the request once it completes.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-Id")
		if rid == "" {
			rid = s.ids.Next().String()
		}
		w.Header().Set("X-Request-Id", rid)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		startedAt := time.Now()
		next.ServeHTTP(sw, r)
		s.logger.Debug("http request",
			logpkg.Str("request_id", rid),
			logpkg.Str("method", r.Method),
			logpkg.Str("path", r.URL.Path),
			logpkg.Int("status", sw.status),
			logpkg.Dur("elapsed", time.Since(startedAt)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps engine errors onto the wire contract kept from the
// original service: every business rejection (bad coordinates, bad range) is
// a 409 alongside no-capacity, store faults are 503, and clients only ever
// see 200/201/409/503.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, seatsvc.ErrOutOfRange), errors.Is(err, seatsvc.ErrInvalidRange):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, seatsvc.ErrStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.CheckHealth(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_serving"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type reserveReq struct {
	Zone  int `json:"zone"`
	Row   int `json:"row"`
	Count int `json:"count"`
}

type reserveResp struct {
	Zone  int `json:"zone"`
	Row   int `json:"row"`
	Count int `json:"count"`
	Start int `json:"start"`
}

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req reserveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	start, err := s.seats.ReserveBlock(r.Context(), req.Zone, req.Row, req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if start == seatsvc.NoSeat {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no capacity"})
		return
	}
	writeJSON(w, http.StatusCreated, reserveResp{Zone: req.Zone, Row: req.Row, Count: req.Count, Start: start})
}

type reserveExactReq struct {
	Zone  int `json:"zone"`
	Row   int `json:"row"`
	Start int `json:"start"`
	Count int `json:"count"`
}

func (s *Server) handleReserveExact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req reserveExactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	start, err := s.seats.ReserveExact(r.Context(), req.Zone, req.Row, req.Start, req.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if start == seatsvc.NoSeat {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "seats already taken"})
		return
	}
	writeJSON(w, http.StatusCreated, reserveResp{Zone: req.Zone, Row: req.Row, Count: req.Count, Start: start})
}

func (s *Server) handleOccupancy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	zone, errZ := strconv.Atoi(r.PathValue("zone"))
	row, errR := strconv.Atoi(r.PathValue("row"))
	if errZ != nil || errR != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "zone and row must be integers"})
		return
	}
	occ, err := s.seats.RowOccupancy(r.Context(), zone, row)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, occ)
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	agg, err := s.seats.AggregateOccupancy(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	n, err := s.seats.InitializeAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"initialized": n})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	n, err := s.seats.ResetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"reset": n})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cfg := s.rt.Config()
	writeJSON(w, http.StatusOK, map[string]any{
		"store": s.rt.Store().Stats(),
		"inventory": map[string]int{
			"event_id":      cfg.EventID,
			"zones":         cfg.Zones,
			"rows_per_zone": cfg.RowsPerZone,
			"seats_per_row": cfg.SeatsPerRow,
			"total_seats":   cfg.TotalSeats(),
			"max_block":     cfg.MaxBlock,
		},
	})
}
