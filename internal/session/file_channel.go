package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fitcrm/fitcrm/internal/events"
)

// slots is the persisted shape: three scalar entries, mirroring the
// original storage keys.
type slots struct {
	Selected    string `json:"fitcrm_selected,omitempty"`
	PendingEdit string `json:"fitcrm_open_edit,omitempty"`
	JustCreated string `json:"fitcrm_last_added,omitempty"`
}

// FileChannel persists the handoff slots in a small JSON file so signals
// survive across process runs, the way the browser slots survived page
// navigation.
type FileChannel struct {
	path   string
	logger *events.Logger

	mu sync.Mutex
}

// NewFileChannel creates a file-backed handoff channel under dataDir.
func NewFileChannel(dataDir string, logger *events.Logger) (*FileChannel, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return &FileChannel{
		path:   filepath.Join(dataDir, "session.json"),
		logger: logger.WithField("component", "session_channel"),
	}, nil
}

// SetSelected records the selected client id.
func (c *FileChannel) SetSelected(id string) error {
	return c.mutate(func(s *slots) { s.Selected = id })
}

// Selected returns the last selected id.
func (c *FileChannel) Selected() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.load()
	return s.Selected, nil
}

// SignalEditRequest sets the pending-edit slot.
func (c *FileChannel) SignalEditRequest(id string) error {
	return c.mutate(func(s *slots) { s.PendingEdit = id })
}

// ConsumeEditRequest reads and clears the pending-edit slot.
func (c *FileChannel) ConsumeEditRequest() (string, error) {
	return c.consume(func(s *slots) *string { return &s.PendingEdit })
}

// SignalJustCreated sets the just-created slot.
func (c *FileChannel) SignalJustCreated(id string) error {
	return c.mutate(func(s *slots) { s.JustCreated = id })
}

// ConsumeJustCreated reads and clears the just-created slot.
func (c *FileChannel) ConsumeJustCreated() (string, error) {
	return c.consume(func(s *slots) *string { return &s.JustCreated })
}

// mutate applies a change to the slots under the lock and persists them.
func (c *FileChannel) mutate(fn func(*slots)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.load()
	fn(&s)
	return c.save(s)
}

// consume atomically reads and clears one slot.
func (c *FileChannel) consume(slot func(*slots) *string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.load()
	field := slot(&s)
	id := *field
	if id == "" {
		return "", nil
	}

	*field = ""
	if err := c.save(s); err != nil {
		return "", err
	}
	return id, nil
}

// load reads the slot file, degrading to empty slots on any damage.
func (c *FileChannel) load() slots {
	var s slots

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return s
	}
	if err != nil {
		c.logger.WithError(err).Warn("Unreadable session slots, starting empty")
		return s
	}

	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.WithError(ErrChannelCorrupt).WithField("path", c.path).Warn("Corrupt session slots, starting empty")
		return slots{}
	}

	return s
}

func (c *FileChannel) save(s slots) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session slots: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename session file: %w", err)
	}

	return nil
}
