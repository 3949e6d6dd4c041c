package dynamic

// Cache holds resolved response-bank answers for the lifetime of one
// orchestrator run. Single-use and multi-entry answers are tracked in
// separate maps but both are reused across documents in the same run so
// the operator is never re-prompted for a base name already answered.
// The cache is never persisted.
type Cache struct {
	singleUse map[string]string
	multiUse  map[string]string
}

// NewCache returns an empty per-run cache.
func NewCache() *Cache {
	return &Cache{
		singleUse: map[string]string{},
		multiUse:  map[string]string{},
	}
}

// Lookup returns the cached answer for base, checking the single-use
// map first.
func (c *Cache) Lookup(base string) (string, bool) {
	if v, ok := c.singleUse[base]; ok {
		return v, true
	}
	if v, ok := c.multiUse[base]; ok {
		return v, true
	}
	return "", false
}

func (c *Cache) store(base, value string, singleUse bool) {
	if singleUse {
		c.singleUse[base] = value
		return
	}
	c.multiUse[base] = value
}
