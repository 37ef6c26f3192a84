package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/aniame/pkg/indexer"
	"github.com/aretw0/aniame/pkg/schema"
	"github.com/aretw0/aniame/pkg/tree"
	"github.com/aretw0/aniame/pkg/validator"
)

// DefaultMaxBodyBytes caps the size of a validation request body.
const DefaultMaxBodyBytes = 1 << 20

// Engine defines what the server needs from the validation engine.
type Engine interface {
	Validate(ctx context.Context, data any, schemaName string) (*validator.Outcome, error)
	ValidatePartial(ctx context.Context, data any, schemaName string) (*validator.Outcome, error)
	Index(schemaName string, opts ...indexer.Option) (indexer.Result, error)
	Schemas() []string
	Descriptor(name string) (schema.Descriptor, bool)
}

// Server serves the schemas of an Engine over HTTP.
type Server struct {
	Engine       Engine
	Logger       *slog.Logger
	Metrics      http.Handler
	MaxBodyBytes int64
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.MaxBodyBytes = n
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:       engine,
		Logger:       slog.Default(),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.GetHealth)
	r.Route("/schemas", func(r chi.Router) {
		r.Get("/", server.ListSchemas)
		r.Get("/{name}", server.GetSchema)
		r.Get("/{name}/index", server.GetIndex)
		r.Post("/{name}/validate", server.Validate)
	})
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ErrorResponse describes one error path of a validation.
type ErrorResponse struct {
	Path     []any  `json:"path"`
	Pointer  string `json:"pointer"`
	Reason   string `json:"reason"`
	Expected string `json:"expected,omitempty"`
	Ref      string `json:"ref,omitempty"`
}

// ValidationResponse is the body of POST /schemas/{name}/validate.
type ValidationResponse struct {
	Valid  bool            `json:"valid"`
	Errors []ErrorResponse `json:"errors"`
}

// NewValidationResponse maps an outcome to its wire form.
func NewValidationResponse(out *validator.Outcome) ValidationResponse {
	resp := ValidationResponse{
		Valid:  out.Success(),
		Errors: make([]ErrorResponse, len(out.Errors)),
	}
	for i, e := range out.Errors {
		resp.Errors[i] = ErrorResponse{
			Path:     e.Path.Values(),
			Pointer:  e.Path.Pointer(),
			Reason:   string(e.Reason),
			Expected: string(e.Expected),
			Ref:      e.Ref,
		}
	}
	return resp
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListSchemas handles GET /schemas.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"schemas": s.Engine.Schemas()})
}

// GetSchema handles GET /schemas/{name}.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, ok := s.Engine.Descriptor(name)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown schema %q", name), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, schema.Encode(d))
}

// GetIndex handles GET /schemas/{name}/index. The repeatable query
// parameters "index" and "field" restrict the index names and the captured
// descriptor fields.
func (s *Server) GetIndex(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var opts []indexer.Option
	q := r.URL.Query()
	if names := q["index"]; len(names) > 0 {
		opts = append(opts, indexer.WithIndexNames(names...))
	}
	if fields := q["field"]; len(fields) > 0 {
		opts = append(opts, indexer.WithCaptureFields(fields...))
	}

	result, err := s.Engine.Index(name, opts...)
	if err != nil {
		s.fail(w, "GetIndex", err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// Validate handles POST /schemas/{name}/validate. The body is a JSON (or
// YAML) document; ?partial=true skips top-level required checks.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	partial := false
	if v := r.URL.Query().Get("partial"); v != "" {
		var err error
		if partial, err = strconv.ParseBool(v); err != nil {
			http.Error(w, "Invalid partial flag", http.StatusBadRequest)
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Validate: body read failed", "error", err)
		return
	}
	data, err := tree.Decode(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		s.Logger.Warn("Validate: Invalid request body", "error", err)
		return
	}

	validate := s.Engine.Validate
	if partial {
		validate = s.Engine.ValidatePartial
	}
	out, err := validate(r.Context(), data, name)
	if err != nil {
		s.fail(w, "Validate", err)
		return
	}
	s.Logger.Debug("Validate: done", "schema", name, "partial", partial, "errors", len(out.Errors))
	s.writeJSON(w, http.StatusOK, NewValidationResponse(out))
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, schema.ErrUnknownSchema) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
	s.Logger.Error(op+" failed", "error", err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
