package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
)

// JSONStore persists the collection as a single JSON array in one file,
// the canonical single-slot layout.
type JSONStore struct {
	path   string
	logger *events.Logger

	mu sync.Mutex
}

// NewJSONStore creates a JSON-backed record store. The slot name becomes
// the file name under dataDir.
func NewJSONStore(dataDir, slot string, logger *events.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &JSONStore{
		path:   filepath.Join(dataDir, slot+".json"),
		logger: logger.WithField("component", "json_store"),
	}, nil
}

// Load reads the collection from the slot file.
func (s *JSONStore) Load() ([]models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the slot file with the given collection.
func (s *JSONStore) Save(records []models.ClientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

// Create prepends a new record and persists the collection.
func (s *JSONStore) Create(fields models.ClientFields) (*models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	id := NewID()
	for hasID(records, id) {
		id = NewID()
	}

	rec := models.NewRecord(id, fields)
	records = append([]models.ClientRecord{*rec.Clone()}, records...)

	if err := s.save(records); err != nil {
		return nil, err
	}

	s.logger.WithField("client_id", id).Info("Created client")
	return rec, nil
}

// Update merges the edit over the matching record and persists.
func (s *JSONStore) Update(id string, update models.ClientUpdate) (*models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}

		update.Apply(&records[i])
		if err := s.save(records); err != nil {
			return nil, err
		}

		s.logger.WithField("client_id", id).Info("Updated client")
		return records[i].Clone(), nil
	}

	return nil, models.ErrClientNotFound
}

// Delete removes the matching record and persists the filtered collection.
func (s *JSONStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	filtered := make([]models.ClientRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID != id {
			filtered = append(filtered, rec)
		}
	}

	if len(filtered) == len(records) {
		return models.ErrClientNotFound
	}

	if err := s.save(filtered); err != nil {
		return err
	}

	s.logger.WithField("client_id", id).Info("Deleted client")
	return nil
}

// FindByID locates a single record.
func (s *JSONStore) FindByID(id string) (*models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return records[i].Clone(), nil
		}
	}

	return nil, models.ErrClientNotFound
}

// Search filters the collection by full name.
func (s *JSONStore) Search(query string) ([]models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	return filterByName(records, query), nil
}

// Close releases resources.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) load() ([]models.ClientRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.ClientRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot file: %w", err)
	}

	var records []models.ClientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// Fail soft: a corrupt slot is treated as empty so the views
		// keep working. The damage is reported, not propagated.
		s.logger.WithError(err).WithField("path", s.path).Error("Corrupt collection slot, starting empty")
		return []models.ClientRecord{}, nil
	}

	if records == nil {
		records = []models.ClientRecord{}
	}
	return records, nil
}

func (s *JSONStore) save(records []models.ClientRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	// Write atomically so a crash never leaves a half-written slot
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename slot file: %w", err)
	}

	return nil
}
