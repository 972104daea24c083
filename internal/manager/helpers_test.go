package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rawg-catalog-service/api/dto"
	"rawg-catalog-service/internal/integration"
)

type fetchCall struct {
	path  string
	query string
}

// fakeFetcher serves canned bodies per path and records every call.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []fetchCall
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeFetcher) on(path, body string) *fakeFetcher {
	f.responses[path] = body
	return f
}

func (f *fakeFetcher) fail(path string, err error) *fakeFetcher {
	f.errs[path] = err
	return f
}

func (f *fakeFetcher) Fetch(_ context.Context, path string, params integration.Params) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fetchCall{path: path, query: params.Encode()})

	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	body, ok := f.responses[path]
	if !ok {
		return nil, &integration.StatusError{Path: path, Code: 404}
	}
	return []byte(body), nil
}

func (f *fakeFetcher) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.path == path {
			n++
		}
	}
	return n
}

func (f *fakeFetcher) lastQuery(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].path == path {
			return f.calls[i].query
		}
	}
	return ""
}

// memStore is a map-backed store that remembers the TTL of every write.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) ttl(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.ttls[key]
	return d, ok
}

var errStoreDown = errors.New("store down")

func newTestManager(store *memStore, f *fakeFetcher) *CatalogManager {
	return NewCatalogManager(store, f, dto.NewKeyMapper("rawg"), DefaultTTLs())
}

func gameList(ids ...int) string {
	body := `{"count": ` + fmt.Sprint(len(ids)) + `, "results": [`
	for i, id := range ids {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"id": %d, "name": "Game %d"}`, id, id)
	}
	return body + `]}`
}
