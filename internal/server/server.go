// Package server exposes an introspectable object tree over HTTP. It is
// the transport layer in front of the introspection core: it turns
// requests into path strings, relays value text back, and maps the
// core's two failure modes to status codes (unknown path to 404,
// unsupported conversion to 422).
// See docs/ARCHITECTURE.md § HTTP Endpoint.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/probe/pkg/introspect"
)

// valueBufSize bounds the text form of any scalar value. The longest
// supported form is a full-precision float64.
const valueBufSize = 64

// Server serves property reads, writes, listings, and watch streams for
// a single root object.
type Server struct {
	root introspect.Introspectable
	log  *zap.Logger
}

// New returns a Server for the given root handle. log may be nil.
func New(root introspect.Introspectable, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{root: root, log: log}
}

// Handler returns the HTTP handler for the property API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Get("/api/properties", s.handleList)
	r.Get("/api/properties/{path}", s.handleGet)
	r.Put("/api/properties/{path}", s.handleSet)
	r.Get("/api/watch", s.handleWatch)
	return r
}

// PropertySummary describes one node of the property tree in listings.
type PropertySummary struct {
	Path     string `json:"path"`
	Leaf     bool   `json:"leaf"`
	Readable bool   `json:"readable"`
	Writable bool   `json:"writable"`
}

// ValueResponse is the body of successful reads and writes.
type ValueResponse struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// setRequest is the body of a write.
type setRequest struct {
	Value string `json:"value"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	summaries := []PropertySummary{}
	introspect.Walk(s.root.Type(), func(path string, info *introspect.TypeInfo) {
		sum := PropertySummary{Path: path}
		if info != nil {
			sum.Leaf = info.IsLeaf()
			sum.Readable = info.CanRead()
			sum.Writable = info.CanWrite()
		}
		summaries = append(summaries, sum)
	})
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")
	handle := s.root.Child(path)
	if !handle.IsValid() {
		writeError(w, http.StatusNotFound, "unknown property path")
		return
	}

	var buf [valueBufSize]byte
	n, ok := handle.GetString(buf[:])
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "property is not readable")
		return
	}
	writeJSON(w, http.StatusOK, ValueResponse{Path: path, Value: string(buf[:n])})
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	handle := s.root.Child(path)
	if !handle.IsValid() {
		writeError(w, http.StatusNotFound, "unknown property path")
		return
	}
	if !handle.SetString([]byte(req.Value)) {
		writeError(w, http.StatusUnprocessableEntity, "value rejected")
		return
	}

	// Echo the stored value back in its canonical text form.
	var buf [valueBufSize]byte
	value := req.Value
	if n, ok := handle.GetString(buf[:]); ok {
		value = string(buf[:n])
	}
	s.log.Info("property written", zap.String("path", path), zap.String("value", value))
	writeJSON(w, http.StatusOK, ValueResponse{Path: path, Value: value})
}

// logRequests is a small zap access-log middleware.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("url", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
