package bitrange

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/henderiw/rangeset/pkg/rangeset"
)

// FromBitSet turns every run of set bits into one part of the result.
func FromBitSet(b *bitset.BitSet) rangeset.Range {
	var parts []rangeset.ContiguousRange
	if b == nil {
		return rangeset.New()
	}
	start, ok := b.NextSet(0)
	for ok {
		end, found := b.NextClear(start)
		if !found {
			end = b.Len()
		}
		// start < end always holds here
		c, _ := rangeset.NewContiguousRange(float64(start), float64(end))
		parts = append(parts, c)
		start, ok = b.NextSet(end)
	}
	return rangeset.FromParts(parts...)
}

// MaxBits bounds the size of a bitset built by ToBitSet. The bitset is sized
// to the largest end, so 1<<24 bits keeps it at 2 MiB.
const MaxBits = 1 << 24

// ToBitSet sets the bit of every integer in r. All bounds must be
// non-negative integers no larger than MaxBits.
func ToBitSet(r rangeset.Range) (*bitset.BitSet, error) {
	enclosing := r.EnclosingContiguousRange()
	if !isIndex(enclosing.End()) {
		return nil, fmt.Errorf("%w: %s cannot be held in a bitset", rangeset.ErrInvalidArgument, r.String())
	}
	b := bitset.New(uint(enclosing.End()))
	for _, p := range r.ContiguousParts() {
		if !isIndex(p.Start()) || !isIndex(p.End()) {
			return nil, fmt.Errorf("%w: %s cannot be held in a bitset", rangeset.ErrInvalidArgument, p.String())
		}
		for i := uint(p.Start()); i < uint(p.End()); i++ {
			b.Set(i)
		}
	}
	return b, nil
}

func isIndex(v float64) bool {
	return v >= 0 && v <= MaxBits && v == math.Trunc(v)
}
