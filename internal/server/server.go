// Package server exposes line-style resolution over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/eggplot/pkg/buildinfo"
	eggerrors "github.com/matzehuels/eggplot/pkg/errors"
	"github.com/matzehuels/eggplot/pkg/linespec"
	"github.com/matzehuels/eggplot/pkg/observability"
)

// Request limits.
const (
	MaxBodyBytes = 1 << 20
	MaxCurves    = 1000
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Server serves the eggplot HTTP API.
type Server struct {
	logger *log.Logger
	router chi.Router
}

// New builds the router. A nil logger discards output.
func New(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/tables/{family}", s.handleTables)
		r.Post("/linespec", s.handleLineSpec)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// =============================================================================
// Middleware
// =============================================================================

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
			"request_id", w.Header().Get(RequestIDHeader))
	})
}

// =============================================================================
// Handlers
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := eggerrors.GetCode(err)
	switch {
	case eggerrors.IsValidation(err):
		status = http.StatusBadRequest
	case code == eggerrors.ErrCodeNotFound:
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed", "error", err)
	}
	if code == "" {
		code = eggerrors.ErrCodeInternal
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: string(code), Message: eggerrors.UserMessage(err)}})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

type tablesResponse struct {
	Family       string         `json:"family"`
	Tables       string         `json:"tables"`
	LineStyles   map[string]int `json:"line_styles"`
	Markers      map[string]int `json:"markers"`
	MarkerGlyphs int            `json:"marker_glyphs"`
	GridLineType int            `json:"grid_line_type"`
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "family")
	fam, ok := linespec.ParseFamily(name)
	if !ok {
		s.writeError(w, eggerrors.New(eggerrors.ErrCodeNotFound, "unknown terminal family %q", name))
		return
	}
	t := linespec.TablesFor(fam)
	resp := tablesResponse{
		Family:       fam.String(),
		Tables:       t.Name(),
		LineStyles:   make(map[string]int),
		Markers:      make(map[string]int),
		MarkerGlyphs: t.MarkerGlyphs(),
		GridLineType: linespec.GridLineType(fam),
	}
	for _, tok := range linespec.LineStyleTokens() {
		resp.LineStyles[tok], _ = t.LineStyleCode(tok)
	}
	for _, tok := range linespec.MarkerTokens() {
		resp.Markers[tok], _ = t.MarkerCode(tok)
	}
	writeJSON(w, http.StatusOK, resp)
}

type lineSpecRequest struct {
	Curves int              `json:"curves"`
	Family string           `json:"family"`
	Styles []map[string]any `json:"styles"`
}

type lineSpecResponse struct {
	Family    string   `json:"family"`
	Lines     []string `json:"lines"`
	PointOnly []bool   `json:"point_only"`
}

func (s *Server) handleLineSpec(w http.ResponseWriter, r *http.Request) {
	var req lineSpecRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, eggerrors.Wrap(eggerrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	resp, err := resolve(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func resolve(req lineSpecRequest) (*lineSpecResponse, error) {
	if req.Curves < 0 || req.Curves > MaxCurves {
		return nil, eggerrors.New(eggerrors.ErrCodeInvalidInput, "curves must be within 0-%d, got %d", MaxCurves, req.Curves)
	}
	fam := linespec.FamilyOther
	if req.Family != "" {
		f, ok := linespec.ParseFamily(req.Family)
		if !ok {
			return nil, eggerrors.New(eggerrors.ErrCodeInvalidInput, "unknown terminal family %q", req.Family)
		}
		fam = f
	}

	res := linespec.NewResolver()
	for i, style := range req.Styles {
		index, pairs, err := stylePairs(style)
		if err != nil {
			return nil, fmt.Errorf("style %d: %w", i+1, err)
		}
		if err := res.SetAll(index, pairs...); err != nil {
			return nil, err
		}
	}

	records, err := res.Resolve(req.Curves)
	if err != nil {
		return nil, err
	}
	lines, err := linespec.RenderAll(records, linespec.TablesFor(fam))
	if err != nil {
		return nil, err
	}
	resp := &lineSpecResponse{Family: fam.String(), Lines: lines, PointOnly: make([]bool, len(records))}
	for i, rec := range records {
		resp.PointOnly[i] = rec.IsPointOnly()
	}
	return resp, nil
}

func stylePairs(style map[string]any) (int, []linespec.Pair, error) {
	raw, ok := style["curve"].(json.Number)
	if !ok {
		return 0, nil, eggerrors.New(eggerrors.ErrCodeInvalidIndex, "curve must be a number")
	}
	f, err := raw.Float64()
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, nil, eggerrors.New(eggerrors.ErrCodeInvalidIndex, "curve must be an integer, got %s", raw)
	}

	var pairs []linespec.Pair
	seen := make(map[linespec.Property]string, len(style))
	for _, key := range sortedKeys(style) {
		if key == "curve" {
			continue
		}
		p, err := linespec.ParseProperty(key)
		if err != nil {
			return 0, nil, err
		}
		if prev, dup := seen[p]; dup {
			return 0, nil, eggerrors.New(eggerrors.ErrCodeInvalidProperty, "%q and %q both set %s", prev, key, p)
		}
		seen[p] = key
		switch v := style[key].(type) {
		case string:
			pairs = append(pairs, linespec.Pair{Property: p, Value: linespec.Text(v)})
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				return 0, nil, eggerrors.New(eggerrors.ErrCodeInvalidValue, "%s: %s is not a number", key, v)
			}
			pairs = append(pairs, linespec.Pair{Property: p, Value: linespec.Number(n)})
		default:
			return 0, nil, eggerrors.New(eggerrors.ErrCodeInvalidValue, "%s: unsupported value %v", key, v)
		}
	}
	return int(f), pairs, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
