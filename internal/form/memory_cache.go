package form

import "sync"

// MemoryDraftCache keeps the encoded draft in memory, keyed like browser storage
type MemoryDraftCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryDraftCache() *MemoryDraftCache {
	return &MemoryDraftCache{entries: make(map[string][]byte)}
}

func (c *MemoryDraftCache) Load() (*Draft, error) {
	c.mu.Lock()
	raw, ok := c.entries[DraftKey]
	c.mu.Unlock()
	if !ok {
		return nil, ErrNoDraft
	}
	return decodeDraft(raw)
}

func (c *MemoryDraftCache) Save(d *Draft) error {
	raw, err := encodeDraft(d)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[DraftKey] = raw
	c.mu.Unlock()
	return nil
}

func (c *MemoryDraftCache) Clear() error {
	c.mu.Lock()
	delete(c.entries, DraftKey)
	c.mu.Unlock()
	return nil
}

// Raw returns the stored bytes for DraftKey
func (c *MemoryDraftCache) Raw() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[DraftKey]
	return raw, ok
}
