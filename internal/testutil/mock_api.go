// Package testutil provides testing utilities for the API client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// MockResponse defines the behavior for a mock API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockAPI is a configurable mock API server for testing. It tracks
// every request so tests can assert exact request counts, URLs, and
// headers.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount      int
	RequestURIs       []string
	LastRequestHeader http.Header
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.RequestURIs = append(mock.RequestURIs, r.URL.RequestURI())
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.RequestURIs = nil
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if resp.StatusCode == 0 {
			resp.StatusCode = http.StatusOK
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// ServeEntities installs a handler for /{entity} that serves records
// out of the given backing set, honoring the client's query grammar:
// limit/offset paging for list calls and filters[id]/filters[id][] for
// ID lookups.
func (m *MockAPI) ServeEntities(entity string, records []map[string]any) {
	m.SetHandler("/"+entity, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		matched := records
		if id := q.Get("filters[id]"); id != "" {
			matched = filterByIDs(records, []string{id})
		} else if ids, ok := q["filters[id][]"]; ok {
			matched = filterByIDs(records, ids)
		}

		offset, _ := strconv.Atoi(q.Get("offset"))
		limit := len(matched)
		if v := q.Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}

		if offset > len(matched) {
			offset = len(matched)
		}
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(Envelope(entity, matched[offset:end])))
	})
}

// filterByIDs keeps the records whose id field matches one of ids,
// preserving the order of ids.
func filterByIDs(records []map[string]any, ids []string) []map[string]any {
	var matched []map[string]any
	for _, id := range ids {
		want, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		for _, rec := range records {
			if got, ok := rec["id"].(int); ok && got == want {
				matched = append(matched, rec)
			}
		}
	}
	return matched
}

// Envelope builds a success envelope body for the given entity and
// records.
func Envelope(entity string, records []map[string]any) string {
	if records == nil {
		records = []map[string]any{}
	}
	body, err := json.Marshal(map[string]any{entity: records})
	if err != nil {
		panic(fmt.Sprintf("marshal envelope: %v", err))
	}
	return string(body)
}

// Records builds n sequential records with ids starting at 1.
func Records(n int) []map[string]any {
	records := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, map[string]any{
			"id":    i,
			"title": fmt.Sprintf("record %d", i),
		})
	}
	return records
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetRequestURIs returns the request URIs seen so far, in order.
func (m *MockAPI) GetRequestURIs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.RequestURIs...)
}

// defaultHandler answers any unconfigured path with an error envelope.
func (m *MockAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"code": 404, "message": "Not Found"}`))
}
