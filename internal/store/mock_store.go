package store

import (
	"sync"

	"github.com/fitcrm/fitcrm/internal/models"
)

// MockStore provides an in-memory implementation for testing.
type MockStore struct {
	mu      sync.Mutex
	records []models.ClientRecord
}

// NewMockStore creates an empty in-memory record store.
func NewMockStore() *MockStore {
	return &MockStore{records: []models.ClientRecord{}}
}

// Load returns a copy of the collection.
func (m *MockStore) Load() ([]models.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(), nil
}

// Save replaces the collection.
func (m *MockStore) Save(records []models.ClientRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make([]models.ClientRecord, 0, len(records))
	for _, rec := range records {
		m.records = append(m.records, *rec.Clone())
	}
	return nil
}

// Create prepends a new record.
func (m *MockStore) Create(fields models.ClientFields) (*models.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := NewID()
	for hasID(m.records, id) {
		id = NewID()
	}

	rec := models.NewRecord(id, fields)
	m.records = append([]models.ClientRecord{*rec.Clone()}, m.records...)
	return rec, nil
}

// Update merges the edit over the matching record.
func (m *MockStore) Update(id string, update models.ClientUpdate) (*models.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id {
			update.Apply(&m.records[i])
			return m.records[i].Clone(), nil
		}
	}
	return nil, models.ErrClientNotFound
}

// Delete removes the matching record.
func (m *MockStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return models.ErrClientNotFound
}

// FindByID locates a single record.
func (m *MockStore) FindByID(id string) (*models.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id {
			return m.records[i].Clone(), nil
		}
	}
	return nil, models.ErrClientNotFound
}

// Search filters the collection by full name.
func (m *MockStore) Search(query string) ([]models.ClientRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterByName(m.snapshot(), query), nil
}

// Close is a no-op.
func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) snapshot() []models.ClientRecord {
	out := make([]models.ClientRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, *rec.Clone())
	}
	return out
}
