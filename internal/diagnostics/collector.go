package diagnostics

// Collector deduplicates diagnostics by "line:col:code", the same key the
// teacher's analyzer walker uses for its errorSet map, and preserves
// first-seen order so output stays byte-stable across runs (spec.md §5).
type Collector struct {
	seen    map[string]struct{}
	ordered []*DiagnosticError
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[string]struct{})}
}

// Add records err unless an equal-keyed diagnostic was already recorded.
func (c *Collector) Add(err *DiagnosticError) {
	if err == nil {
		return
	}
	key := err.DedupKey()
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.ordered = append(c.ordered, err)
}

// AddAll records every non-nil error in errs.
func (c *Collector) AddAll(errs []*DiagnosticError) {
	for _, e := range errs {
		c.Add(e)
	}
}

// All returns the collected diagnostics in first-seen order.
func (c *Collector) All() []*DiagnosticError {
	return c.ordered
}

// HasFatal reports whether any collected diagnostic demands pipeline abort.
func (c *Collector) HasFatal() bool {
	for _, e := range c.ordered {
		if e.Fatal {
			return true
		}
	}
	return false
}

// Reset clears the collector for reuse across compilations (spec.md §5).
func (c *Collector) Reset() {
	c.seen = make(map[string]struct{})
	c.ordered = nil
}
