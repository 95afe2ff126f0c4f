package store

import (
	"context"
	"errors"
	"sync"

	"shade-storefront/internal/domain"
)

var errBackend = errors.New("backend unavailable")

type fakeStorage struct {
	mu         sync.Mutex
	data       map[string]string
	writes     int
	failReads  bool
	failWrites bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{data: make(map[string]string)}
}

func (f *fakeStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReads {
		return "", false, errBackend
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStorage) SetItem(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failWrites {
		return errBackend
	}
	f.data[key] = value
	return nil
}

func (f *fakeStorage) RemoveItem(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failWrites {
		return errBackend
	}
	delete(f.data, key)
	return nil
}

func (f *fakeStorage) raw(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeStorage) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// fakeProvider derives a session from the credentials. When gate is non-nil
// each call signals on started and then blocks until gate yields a value.
type fakeProvider struct {
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (p *fakeProvider) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	if p.gate != nil {
		p.started <- struct{}{}
		select {
		case <-p.gate:
		case <-ctx.Done():
			return domain.Session{}, ctx.Err()
		}
	}
	if p.err != nil {
		return domain.Session{}, p.err
	}
	name := creds.Name
	if name == "" {
		name = "user"
	}
	return domain.Session{ID: "id-" + creds.Email, Email: creds.Email, Name: name}, nil
}
