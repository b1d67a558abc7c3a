package analyzers

// orderedCounts is a string counter that remembers the order in which keys were first seen.
type orderedCounts struct {
	keys   []string
	counts map[string]int64
}

func newOrderedCounts() *orderedCounts {
	return &orderedCounts{counts: make(map[string]int64)}
}

func (c *orderedCounts) Inc(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// Get returns the count for key, 0 when unseen.
func (c *orderedCounts) Get(key string) int64 {
	return c.counts[key]
}

// Keys returns keys in first-seen order. The slice must not be modified.
func (c *orderedCounts) Keys() []string {
	return c.keys
}

func (c *orderedCounts) Len() int {
	return len(c.keys)
}
