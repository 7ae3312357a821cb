// Package storetest provides a fake product store served over HTTP
package storetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"invtrack/internal/domain"
	"invtrack/internal/store"
)

// Server is a REST product store backed by a MemoryStore
type Server struct {
	*httptest.Server
	Store *store.MemoryStore

	mu       sync.Mutex
	requests map[string]int
	failures map[string][]int
	holds    map[string]chan struct{}
	created  [][]byte
	ids      []string
}

// NewServer starts a fake store seeded with products. Callers must Close it.
func NewServer(seed ...domain.Product) *Server {
	s := &Server{
		Store:    store.NewMemoryStore(),
		requests: make(map[string]int),
		failures: make(map[string][]int),
		holds:    make(map[string]chan struct{}),
	}
	s.Store.Seed(seed...)

	r := chi.NewRouter()
	r.Use(s.intercept)
	r.Get("/products", s.list)
	r.Post("/products", s.create)
	r.Delete("/products/{id}", s.delete)

	s.Server = httptest.NewServer(r)
	return s
}

// FailNext makes the next request with method answer with status
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], status)
}

// Hold blocks the next request with method until release is called.
// The request is counted before it blocks.
func (s *Server) Hold(method string) (release func()) {
	ch := make(chan struct{})
	s.mu.Lock()
	s.holds[method] = ch
	s.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Requests returns how many requests with method reached the server
func (s *Server) Requests(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method]
}

// CreateBodies returns the decoded bodies of every POST /products
func (s *Server) CreateBodies() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	bodies := make([]map[string]any, 0, len(s.created))
	for _, raw := range s.created {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err == nil {
			bodies = append(bodies, m)
		}
	}
	return bodies
}

// RequestIDs returns the X-Request-ID header of every request, in arrival order
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method]++
		s.ids = append(s.ids, r.Header.Get("X-Request-ID"))
		hold := s.holds[r.Method]
		delete(s.holds, r.Method)
		status := 0
		if queued := s.failures[r.Method]; len(queued) > 0 {
			status = queued[0]
			s.failures[r.Method] = queued[1:]
		}
		s.mu.Unlock()

		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}
		if status != 0 {
			writeJSON(w, status, map[string]string{"detail": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	s.created = append(s.created, raw)
	s.mu.Unlock()

	var p domain.NewProduct
	if err := json.Unmarshal(raw, &p); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}

	created, err := s.Store.Create(r.Context(), p)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
		return
	}

	if err := s.Store.Delete(r.Context(), domain.ProductID(id)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, errors.Wrap(err, "failed to encode response").Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
