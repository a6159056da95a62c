package engine

import "encoding/binary"

// memCursor walks a single column family's committed records in ascending
// encoded-key order, stopping at the first physical key belonging to a
// different column family.
type memCursor struct {
	cf  uint64
	n   *skipNode
}

func newMemCursor(m *MemStore, cf uint64, lowerBound []byte) *memCursor {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &memCursor{cf: cf, n: m.data.seek(physicalKey(cf, lowerBound))}
	c.skipToOwnFamily()
	return c
}

func (c *memCursor) skipToOwnFamily() {
	if c.n != nil && !c.inFamily(c.n) {
		c.n = nil
	}
}

func (c *memCursor) inFamily(n *skipNode) bool {
	if len(n.key) < 8 {
		return false
	}
	return binary.BigEndian.Uint64(n.key[:8]) == c.cf
}

func (c *memCursor) Valid() bool { return c.n != nil }

// Key returns the current record's encoded user key (the cf prefix
// stripped off).
func (c *memCursor) Key() []byte {
	return c.n.key[8:]
}

func (c *memCursor) Value() []byte {
	return c.n.value.(record).value
}

func (c *memCursor) Next() {
	c.n = c.n.next[0]
	c.skipToOwnFamily()
}

func (c *memCursor) Close() {
	c.n = nil
}
