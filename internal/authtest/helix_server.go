package authtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is what HelixServer saw of one request.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// Page is one canned list response.
type Page struct {
	Data   []any
	Cursor string
	Extra  map[string]any
}

// HelixServer is a fake Helix API rooted at /helix/. When created with an
// AuthServer, every request must carry the right Client-Id and a bearer
// token that AuthServer.Verify accepts.
type HelixServer struct {
	*httptest.Server

	auth *AuthServer

	mu       sync.Mutex
	requests []RecordedRequest
	pages    map[string][]Page
	served   map[string]int
}

// NewHelixServer starts the fake. auth may be nil to accept any credentials.
func NewHelixServer(t testing.TB, auth *AuthServer) *HelixServer {
	t.Helper()

	s := &HelixServer{
		auth:   auth,
		pages:  make(map[string][]Page),
		served: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	return s
}

// Root is the Helix root to configure clients with.
func (s *HelixServer) Root() string {
	return s.URL + "/helix/"
}

// ServePages makes path (relative to the root, e.g. "search/channels")
// answer with pages in order, one per request. Requests past the last page
// get an empty page without a cursor.
func (s *HelixServer) ServePages(path string, pages ...Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = pages
	s.served[path] = 0
}

// Requests returns every request received, in order.
func (s *HelixServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

func (s *HelixServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	})
	s.mu.Unlock()

	if !s.authenticate(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error":   "Unauthorized",
			"status":  http.StatusUnauthorized,
			"message": "Invalid OAuth token",
		})
		return
	}

	path, ok := strings.CutPrefix(r.URL.Path, "/helix/")
	if !ok {
		writeNotFound(w)
		return
	}

	page, ok := s.nextPage(path)
	if !ok {
		writeNotFound(w)
		return
	}

	resp := make(map[string]any, len(page.Extra)+2)
	for k, v := range page.Extra {
		resp[k] = v
	}
	data := page.Data
	if data == nil {
		data = []any{}
	}
	resp["data"] = data
	if page.Cursor != "" {
		resp["pagination"] = map[string]string{"cursor": page.Cursor}
	} else {
		resp["pagination"] = map[string]string{}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *HelixServer) authenticate(r *http.Request) bool {
	if s.auth == nil {
		return true
	}
	if r.Header.Get("Client-Id") != s.auth.ClientID {
		return false
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	_, err := s.auth.Verify(token)
	return err == nil
}

func (s *HelixServer) nextPage(path string) (Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pages, ok := s.pages[path]
	if !ok {
		return Page{}, false
	}

	i := s.served[path]
	s.served[path]++
	if i >= len(pages) {
		return Page{}, true
	}
	return pages[i], true
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Not Found",
		"status":  http.StatusNotFound,
		"message": "unknown endpoint",
	})
}
