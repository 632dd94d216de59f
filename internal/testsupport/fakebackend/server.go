// Package fakebackend serves an in-memory annotation backend over HTTP for
// contract tests of the REST client and the commands built on it.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/knaw-huc/entity-annotator/internal/core/domain"
)

// Server is an in-memory backend. Items are addressed by position.
type Server struct {
	mu     sync.Mutex
	items  []domain.Mention
	saves  int
	fail   int
	body   string
	random func(n int) int

	srv *httptest.Server
}

// New starts a server holding items. Call Close when done.
func New(items ...domain.Mention) *Server {
	s := &Server{
		items:  append([]domain.Mention(nil), items...),
		random: rand.IntN,
	}
	s.srv = httptest.NewServer(s.Router())
	return s
}

// URL returns the API base URL.
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// SetRandom replaces the random source used by /randomindex. It receives
// the number of unannotated items and returns a position among them.
func (s *Server) SetRandom(fn func(n int) int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.random = fn
}

// FailWith makes every request fail with code and body until code is 0.
func (s *Server) FailWith(code int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail, s.body = code, body
}

// Golden returns the decision stored for item i.
func (s *Server) Golden(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[i].Golden
}

// Saves returns how often /save was called.
func (s *Server) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Router returns the backend's routes under /api.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(s.failures)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/statistics", s.statistics).Methods("GET")
	api.HandleFunc("/randomindex", s.randomIndex).Methods("GET")
	api.HandleFunc("/items/{index}", s.getItem).Methods("GET")
	api.HandleFunc("/items/{index}", s.putAnswer).Methods("PUT")
	api.HandleFunc("/dump", s.dump).Methods("GET")
	api.HandleFunc("/save", s.save).Methods("GET")
	api.HandleFunc("/terms", s.listTerms).Methods("GET")
	api.HandleFunc("/terms/{term}", s.getTerm).Methods("GET")
	return r
}

func (s *Server) failures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		code, body := s.fail, s.body
		s.mu.Unlock()
		if code != 0 {
			http.Error(w, body, code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) statistics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	todo := len(s.todo())
	done := len(s.items) - todo
	s.mu.Unlock()

	writeJSON(w, map[string]int{"done": done, "todo": todo})
}

func (s *Server) randomIndex(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo := s.todo()
	if len(todo) == 0 {
		http.Error(w, "nothing left to annotate", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "%d\n", todo[s.random(len(todo))])
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index(w, r)
	if !ok {
		return
	}
	writeJSON(w, s.items[i])
}

func (s *Server) putAnswer(w http.ResponseWriter, r *http.Request) {
	answer, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index(w, r)
	if !ok {
		return
	}
	if s.items[i].Golden != "" {
		http.Error(w, "already answered", http.StatusBadRequest)
		return
	}
	s.items[i].Golden = string(answer)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) dump(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.items)
}

func (s *Server) save(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) listTerms(w http.ResponseWriter, r *http.Request) {
	from, size, ok := window(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	byInput := s.byInput()
	s.mu.Unlock()

	terms := make([]domain.TermFrequency, 0, len(byInput))
	for k, hits := range byInput {
		terms = append(terms, domain.TermFrequency{Key: k, Freq: len(hits)})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Freq != terms[j].Freq {
			return terms[i].Freq > terms[j].Freq
		}
		return terms[i].Key < terms[j].Key
	})

	lo, hi := clamp(from, size, len(terms))
	writeJSON(w, struct {
		Frequencies []domain.TermFrequency `json:"frequencies"`
		Total       int                    `json:"total"`
	}{terms[lo:hi], len(terms)})
}

func (s *Server) getTerm(w http.ResponseWriter, r *http.Request) {
	from, size, ok := window(w, r)
	if !ok {
		return
	}
	term, err := url.PathUnescape(mux.Vars(r)["term"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	hits := s.byInput()[term]
	occurs := make([]domain.Occurrence, len(hits))
	for i, index := range hits {
		it := s.items[index]
		occurs[i] = domain.Occurrence{
			Index:         index,
			Source:        it.ContextID,
			ControlAccess: it.ControlAccess,
			Annotated:     it.Golden != "",
		}
	}
	s.mu.Unlock()

	if len(occurs) == 0 {
		http.NotFound(w, r)
		return
	}
	sort.Slice(occurs, func(i, j int) bool {
		if occurs[i].ControlAccess != occurs[j].ControlAccess {
			return occurs[i].ControlAccess
		}
		return occurs[i].Index < occurs[j].Index
	})

	lo, hi := clamp(from, size, len(occurs))
	writeJSON(w, struct {
		Term        string              `json:"@term"`
		Occurrences []domain.Occurrence `json:"occurences"`
		Total       int                 `json:"total"`
	}{term, occurs[lo:hi], len(occurs)})
}

// todo returns the positions of unannotated items. Callers hold s.mu.
func (s *Server) todo() []int {
	var out []int
	for i, it := range s.items {
		if it.Golden == "" {
			out = append(out, i)
		}
	}
	return out
}

// byInput groups item positions by mention text. Callers hold s.mu.
func (s *Server) byInput() map[string][]int {
	out := make(map[string][]int)
	for i, it := range s.items {
		out[it.Input] = append(out[it.Input], i)
	}
	return out
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	param := mux.Vars(r)["index"]
	i, err := strconv.Atoi(param)
	if err != nil || i < 0 || i >= len(s.items) {
		http.Error(w, fmt.Sprintf("invalid index %q", param), http.StatusNotFound)
		return 0, false
	}
	return i, true
}

func window(w http.ResponseWriter, r *http.Request) (from, size int, ok bool) {
	q := r.URL.Query()
	from, ok = natural(w, q.Get("from"), "from", 0)
	if !ok {
		return 0, 0, false
	}
	size, ok = natural(w, q.Get("size"), "size", domain.DefaultPageSize)
	return from, size, ok
}

func natural(w http.ResponseWriter, s, name string, def int) (int, bool) {
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		http.Error(w, fmt.Sprintf("invalid %s parameter: %q", name, s), http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

// clamp returns the bounds of the window [from, from+size) within n items.
func clamp(from, size, n int) (lo, hi int) {
	lo = min(from, n)
	hi = min(lo+size, n)
	return lo, hi
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
