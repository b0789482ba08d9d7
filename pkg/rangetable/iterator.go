package rangetable

type Iterator struct {
	current int
	keys    []string
	table   map[string]Entry
}

func (r *Iterator) Value() Entry {
	return r.table[r.keys[r.current]]
}

func (r *Iterator) Name() string {
	return r.keys[r.current]
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.keys)
}

// IsAdjacent reports whether the current entry starts where the previous one
// ends.
func (r *Iterator) IsAdjacent() bool {
	if r.current < 1 {
		return false
	}
	prev := r.table[r.keys[r.current-1]].Range().EnclosingContiguousRange()
	curr := r.Value().Range().EnclosingContiguousRange()
	return prev.End() == curr.Start()
}
