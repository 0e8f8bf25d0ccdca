package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fitcrm/fitcrm/internal/events"
	"github.com/fitcrm/fitcrm/internal/models"
)

// SQLiteStore keeps the collection in a local SQLite database. The stored
// order is explicit: position 0 is the newest record.
type SQLiteStore struct {
	db     *sql.DB
	logger *events.Logger

	mu sync.Mutex
}

// NewSQLiteStore creates a SQLite-backed record store.
func NewSQLiteStore(dataDir, slot string, logger *events.Logger) (*SQLiteStore, error) {
	dbPath := filepath.Join(dataDir, slot+".db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logger.WithField("component", "sqlite_store"),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
    CREATE TABLE IF NOT EXISTS clients (
        position INTEGER NOT NULL,
        id TEXT PRIMARY KEY,
        full_name TEXT NOT NULL,
        age TEXT NOT NULL DEFAULT '',
        gender TEXT NOT NULL DEFAULT '',
        email TEXT NOT NULL,
        phone TEXT NOT NULL,
        goal TEXT NOT NULL,
        start_date TEXT NOT NULL,
        history TEXT NOT NULL DEFAULT '[]'
    );

    CREATE INDEX IF NOT EXISTS idx_clients_position ON clients(position);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Load returns the collection ordered newest first.
func (s *SQLiteStore) Load() ([]models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save replaces the table contents with the given collection.
func (s *SQLiteStore) Save(records []models.ClientRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

// Create inserts a new record at position zero, shifting the rest down.
func (s *SQLiteStore) Create(fields models.ClientFields) (*models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := NewID()
	for {
		var exists bool
		if err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM clients WHERE id = ?)`, id).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check id: %w", err)
		}
		if !exists {
			break
		}
		id = NewID()
	}

	rec := models.NewRecord(id, fields)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE clients SET position = position + 1`); err != nil {
		return nil, fmt.Errorf("shift positions: %w", err)
	}

	if _, err := tx.Exec(`
        INSERT INTO clients (position, id, full_name, age, gender, email, phone, goal, start_date, history)
        VALUES (0, ?, ?, ?, ?, ?, ?, ?, ?, '[]')
    `, rec.ID, rec.FullName, rec.Age, rec.Gender, rec.Email, rec.Phone, rec.Goal, rec.StartDate); err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.logger.WithField("client_id", id).Info("Created client")
	return rec, nil
}

// Update merges the edit over the stored row.
func (s *SQLiteStore) Update(id string, update models.ClientUpdate) (*models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.findByID(id)
	if err != nil {
		return nil, err
	}

	update.Apply(rec)

	if _, err := s.db.Exec(`
        UPDATE clients
        SET full_name = ?, age = ?, gender = ?, email = ?, phone = ?, goal = ?, start_date = ?
        WHERE id = ?
    `, rec.FullName, rec.Age, rec.Gender, rec.Email, rec.Phone, rec.Goal, rec.StartDate, id); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}

	s.logger.WithField("client_id", id).Info("Updated client")
	return rec, nil
}

// Delete removes the row with the given id.
func (s *SQLiteStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrClientNotFound
	}

	s.logger.WithField("client_id", id).Info("Deleted client")
	return nil
}

// FindByID locates a single record.
func (s *SQLiteStore) FindByID(id string) (*models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByID(id)
}

// Search filters rows by full name, preserving stored order.
func (s *SQLiteStore) Search(query string) ([]models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.load()
	}

	rows, err := s.db.Query(`
        SELECT id, full_name, age, gender, email, phone, goal, start_date, history
        FROM clients
        WHERE instr(lower(full_name), ?) > 0
        ORDER BY position
    `, q)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) save(records []models.ClientRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM clients`); err != nil {
		return fmt.Errorf("clear clients: %w", err)
	}

	for i, rec := range records {
		history, err := json.Marshal(rec.History)
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		if rec.History == nil {
			history = []byte("[]")
		}

		if _, err := tx.Exec(`
            INSERT INTO clients (position, id, full_name, age, gender, email, phone, goal, start_date, history)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, i, rec.ID, rec.FullName, rec.Age, rec.Gender, rec.Email, rec.Phone, rec.Goal, rec.StartDate, string(history)); err != nil {
			return fmt.Errorf("insert client %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *SQLiteStore) load() ([]models.ClientRecord, error) {
	rows, err := s.db.Query(`
        SELECT id, full_name, age, gender, email, phone, goal, start_date, history
        FROM clients
        ORDER BY position
    `)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

func (s *SQLiteStore) findByID(id string) (*models.ClientRecord, error) {
	row := s.db.QueryRow(`
        SELECT id, full_name, age, gender, email, phone, goal, start_date, history
        FROM clients
        WHERE id = ?
    `, id)

	rec, err := s.scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query client: %w", err)
	}
	return rec, nil
}

func (s *SQLiteStore) scanRecords(rows *sql.Rows) ([]models.ClientRecord, error) {
	records := []models.ClientRecord{}
	for rows.Next() {
		rec, err := s.scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return records, nil
}

func (s *SQLiteStore) scanRecord(scan func(dest ...any) error) (*models.ClientRecord, error) {
	var rec models.ClientRecord
	var history string

	err := scan(&rec.ID, &rec.FullName, &rec.Age, &rec.Gender,
		&rec.Email, &rec.Phone, &rec.Goal, &rec.StartDate, &history)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(history), &rec.History); err != nil {
		// Same soft-failure stance as the JSON slot: a mangled history
		// column degrades to an empty log, it does not break the view
		s.logger.WithError(err).WithField("client_id", rec.ID).Error("Corrupt history column, starting empty")
		rec.History = []string{}
	}
	if rec.History == nil {
		rec.History = []string{}
	}

	return &rec, nil
}
