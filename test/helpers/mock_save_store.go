package helpers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation"
)

// ErrInjected is returned by MockSaveStore when a failure is switched on
var ErrInjected = errors.New("injected store failure")

type storedSave struct {
	data    []byte
	savedAt time.Time
}

// MockSaveStore is an in-memory SaveStore with failure injection
type MockSaveStore struct {
	mu         sync.Mutex
	saves      map[string]storedSave
	writes     int
	FailWrites bool
	FailReads  bool
}

// NewMockSaveStore creates an empty mock save store
func NewMockSaveStore() *MockSaveStore {
	return &MockSaveStore{
		saves: make(map[string]storedSave),
	}
}

// Write stores a copy of data under slot
func (m *MockSaveStore) Write(ctx context.Context, slot string, data []byte, savedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrInjected
	}
	m.saves[slot] = storedSave{data: append([]byte(nil), data...), savedAt: savedAt}
	m.writes++
	return nil
}

// Read returns the blob stored under slot
func (m *MockSaveStore) Read(ctx context.Context, slot string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, ErrInjected
	}
	s, ok := m.saves[slot]
	if !ok {
		return nil, simulation.ErrSaveNotFound
	}
	return append([]byte(nil), s.data...), nil
}

// Delete removes slot
func (m *MockSaveStore) Delete(ctx context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saves[slot]; !ok {
		return simulation.ErrSaveNotFound
	}
	delete(m.saves, slot)
	return nil
}

// List describes every stored slot, sorted by name
func (m *MockSaveStore) List(ctx context.Context) ([]simulation.SaveInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	infos := make([]simulation.SaveInfo, 0, len(m.saves))
	for slot, s := range m.saves {
		infos = append(infos, simulation.SaveInfo{Slot: slot, SavedAt: s.savedAt, Size: len(s.data)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Slot < infos[j].Slot })
	return infos, nil
}

// Put stores raw bytes, bypassing encoding, for corrupt-save tests
func (m *MockSaveStore) Put(slot string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[slot] = storedSave{data: data, savedAt: time.Now()}
}

// Writes returns the number of successful writes
func (m *MockSaveStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
