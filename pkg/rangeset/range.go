package rangeset

import (
	"fmt"
	"strings"

	"github.com/henderiw/rangeset/pkg/notation"
)

// Range is a set of numbers held as a sequence of disjoint half-open parts,
// sorted by start. The zero value is the empty set. A Range is never mutated
// after construction; every operation returns a new one.
type Range struct {
	parts []ContiguousRange
}

// New returns the empty set.
func New() Range { return Range{} }

// Parse builds a range from text like "0-2, 4-7". Parts are kept in the order
// they are written.
func Parse(s string) (Range, error) {
	pairs, err := notation.Parse(s)
	if err != nil {
		return Range{}, invalidArgument("Parse", err, s)
	}
	var parts []ContiguousRange
	for _, p := range pairs {
		c, err := NewContiguousRange(p.Start, p.End)
		if err != nil {
			return Range{}, invalidArgument("Parse", err, s)
		}
		if !c.Empty() {
			parts = append(parts, c)
		}
	}
	return Range{parts: parts}, nil
}

func MustParse(s string) Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// FromBounds returns the set [start, end).
func FromBounds(start, end float64) (Range, error) {
	c, err := NewContiguousRange(start, end)
	if err != nil {
		return Range{}, invalidArgument("FromBounds", err, start, end)
	}
	return c.Range(), nil
}

func MustFromBounds(start, end float64) Range {
	r, err := FromBounds(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// FromPairs folds every [start, end] pair into one normalized set.
func FromPairs(pairs ...[]float64) (Range, error) {
	var r Range
	for _, p := range pairs {
		c, err := ContiguousRangeFromSlice(p)
		if err != nil {
			return Range{}, invalidArgument("FromPairs", err, pairs)
		}
		r = r.Add(c.Range())
	}
	return r, nil
}

// FromParts stores parts as given. The caller must supply them sorted and
// disjoint; no normalization is done.
func FromParts(parts ...ContiguousRange) Range {
	if len(parts) == 0 {
		return Range{}
	}
	return Range{parts: append([]ContiguousRange(nil), parts...)}
}

// CopyOf returns a set equal to r with its own backing storage.
func CopyOf(r Range) Range { return r.Clone() }

func (r Range) Clone() Range {
	return FromParts(r.parts...)
}

func (r Range) String() string {
	parts := make([]string, 0, len(r.parts))
	for _, p := range r.parts {
		parts = append(parts, p.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Length is the sum of the lengths of all parts.
func (r Range) Length() float64 {
	var total float64
	for _, p := range r.parts {
		total += p.Length()
	}
	return total
}

func (r Range) Empty() bool {
	for _, p := range r.parts {
		if !p.Empty() {
			return false
		}
	}
	return true
}

// ContiguousParts returns a copy of the parts of r, in order.
func (r Range) ContiguousParts() []ContiguousRange {
	return append([]ContiguousRange{}, r.parts...)
}

func (r Range) IsContiguous() bool {
	return len(r.parts) <= 1
}

// EnclosingContiguousRange returns the smallest interval spanning every part.
// The empty set yields the zero interval.
func (r Range) EnclosingContiguousRange() ContiguousRange {
	if len(r.parts) == 0 {
		return ContiguousRange{}
	}
	if r.IsContiguous() {
		return r.parts[0]
	}
	enclosing := r.parts[0]
	for _, p := range r.parts[1:] {
		if p.start < enclosing.start {
			enclosing.start = p.start
		}
		if p.end > enclosing.end {
			enclosing.end = p.end
		}
	}
	return enclosing
}

func (r Range) Contains(v float64) bool {
	for _, p := range r.parts {
		if p.Contains(v) {
			return true
		}
	}
	return false
}

// Equals reports whether r and other cover the same numbers, however they are
// split into parts.
func (r Range) Equals(other Range) bool {
	return r.Includes(other) && other.Includes(r)
}

// Includes reports whether every number of other is in r.
func (r Range) Includes(other Range) bool {
	return other.Subtract(r).Empty()
}

// Overlaps reports whether r and other share at least one number. Touching
// intervals do not overlap.
func (r Range) Overlaps(other Range) bool {
	return !r.Subtract(other).Equals(r)
}

// Subtract returns r \ other. Each part of r is cut by every part of other in
// turn; the remainders are concatenated in the order of r.
func (r Range) Subtract(other Range) Range {
	var difference []ContiguousRange
	for _, p := range r.parts {
		remaining := []ContiguousRange{p}
		for _, o := range other.parts {
			var next []ContiguousRange
			for _, rem := range remaining {
				next = append(next, rem.Subtract(o).parts...)
			}
			remaining = next
		}
		difference = append(difference, remaining...)
	}
	return Range{parts: difference}
}

// Add returns r ∪ other, computed as U \ ((U \ r) \ other) with U the interval
// enclosing both.
func (r Range) Add(other Range) Range {
	if other.Empty() {
		return r
	}
	if r.Empty() {
		return other
	}
	a := r.EnclosingContiguousRange()
	b := other.EnclosingContiguousRange()
	enclosing := ContiguousRange{start: min(a.start, b.start), end: max(a.end, b.end)}.Range()
	return enclosing.Subtract(enclosing.Subtract(r).Subtract(other))
}

// Intersect returns r ∩ other.
func (r Range) Intersect(other Range) Range {
	return r.Subtract(r.Subtract(other))
}

func (r Range) MarshalText() ([]byte, error) {
	pairs := make([]notation.Pair, 0, len(r.parts))
	for _, p := range r.parts {
		pairs = append(pairs, p.pair())
	}
	return []byte(notation.Format(pairs)), nil
}

func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return fmt.Errorf("cannot unmarshal range %q: %w", text, err)
	}
	*r = parsed
	return nil
}
