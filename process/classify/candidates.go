package classify

// candidates is the shrinking set of names a pass still looks for. Iteration
// follows roster order so every run of a pass is reproducible.
type candidates struct {
	order   []string
	present map[string]bool
}

func newCandidates(names []string) *candidates {
	c := &candidates{order: append([]string(nil), names...), present: make(map[string]bool, len(names))}
	for _, n := range names {
		c.present[n] = true
	}
	return c
}

// snapshot returns the remaining names in roster order. Removing names while
// ranging over a snapshot is safe.
func (c *candidates) snapshot() []string {
	out := make([]string, 0, len(c.present))
	for _, n := range c.order {
		if c.present[n] {
			out = append(out, n)
		}
	}
	return out
}

func (c *candidates) remove(name string) { delete(c.present, name) }

func (c *candidates) len() int { return len(c.present) }
