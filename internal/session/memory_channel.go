package session

import "sync"

// MemoryChannel is an in-process channel for tests and single-run tooling.
type MemoryChannel struct {
	mu          sync.Mutex
	selected    string
	pendingEdit string
	justCreated string
}

// NewMemoryChannel creates an empty in-memory handoff channel.
func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{}
}

// SetSelected records the selected client id.
func (c *MemoryChannel) SetSelected(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = id
	return nil
}

// Selected returns the last selected id.
func (c *MemoryChannel) Selected() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, nil
}

// SignalEditRequest sets the pending-edit slot.
func (c *MemoryChannel) SignalEditRequest(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingEdit = id
	return nil
}

// ConsumeEditRequest reads and clears the pending-edit slot.
func (c *MemoryChannel) ConsumeEditRequest() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.pendingEdit
	c.pendingEdit = ""
	return id, nil
}

// SignalJustCreated sets the just-created slot.
func (c *MemoryChannel) SignalJustCreated(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.justCreated = id
	return nil
}

// ConsumeJustCreated reads and clears the just-created slot.
func (c *MemoryChannel) ConsumeJustCreated() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.justCreated
	c.justCreated = ""
	return id, nil
}
