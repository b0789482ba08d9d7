package rangeset

import (
	"fmt"
	"strconv"

	"github.com/henderiw/rangeset/pkg/notation"
)

// ContiguousRange is the half-open interval [start, end).
type ContiguousRange struct {
	start float64
	end   float64
}

func NewContiguousRange(start, end float64) (ContiguousRange, error) {
	if !IsNumber(start) || !IsNumber(end) || start > end {
		return ContiguousRange{}, invalidArgument("NewContiguousRange",
			fmt.Errorf("want 2 numbers with start <= end"), start, end)
	}
	return ContiguousRange{start: start, end: end}, nil
}

// ContiguousRangeFromSlice builds an interval from a 2-element [start, end] slice.
func ContiguousRangeFromSlice(v []float64) (ContiguousRange, error) {
	if len(v) != 2 {
		return ContiguousRange{}, invalidArgument("ContiguousRangeFromSlice",
			fmt.Errorf("want 2 numbers, got %d", len(v)), v)
	}
	c, err := NewContiguousRange(v[0], v[1])
	if err != nil {
		return ContiguousRange{}, invalidArgument("ContiguousRangeFromSlice", err, v)
	}
	return c, nil
}

// ParseContiguousRange parses a single token such as "0-2" or "7".
func ParseContiguousRange(s string) (ContiguousRange, error) {
	p, err := notation.ParseOne(s)
	if err != nil {
		return ContiguousRange{}, invalidArgument("ParseContiguousRange", err, s)
	}
	c, err := NewContiguousRange(p.Start, p.End)
	if err != nil {
		return ContiguousRange{}, invalidArgument("ParseContiguousRange", err, s)
	}
	return c, nil
}

// Start returns the inclusive lower bound of r.
func (r ContiguousRange) Start() float64 { return r.start }

// End returns the exclusive upper bound of r.
func (r ContiguousRange) End() float64 { return r.end }

// Length is end - start; an empty interval has length 0 even at infinity.
func (r ContiguousRange) Length() float64 {
	if r.start == r.end {
		return 0
	}
	return r.end - r.start
}

func (r ContiguousRange) Empty() bool { return r.start == r.end }

func (r ContiguousRange) Contains(v float64) bool {
	return r.start <= v && v < r.end
}

// Range lifts r into a set holding only r.
func (r ContiguousRange) Range() Range {
	if r.Empty() {
		return Range{}
	}
	return Range{parts: []ContiguousRange{r}}
}

// String prints a width-1 interval as its start value, anything else as
// "[start end)".
func (r ContiguousRange) String() string {
	if r.Length() == 1 {
		return formatNumber(r.start)
	}
	return "[" + formatNumber(r.start) + " " + formatNumber(r.end) + ")"
}

func (r ContiguousRange) pair() notation.Pair {
	return notation.Pair{Start: r.start, End: r.end}
}

// Subtract returns r \ other as 0, 1 or 2 pieces.
func (r ContiguousRange) Subtract(other ContiguousRange) Range {
	if r.Empty() {
		return Range{}
	}
	if other.Empty() {
		return r.Range()
	}
	if r.start < other.start {
		switch {
		case r.end <= other.start:
			//   r
			// s----e  s----e
			//           other
			return r.Range()
		case r.end <= other.end:
			//   r
			// s------e
			//     s------e
			//       other
			return Range{parts: []ContiguousRange{{start: r.start, end: other.start}}}
		default:
			//         r
			// s----------------e
			//      s------e
			//        other
			return Range{parts: []ContiguousRange{
				{start: r.start, end: other.start},
				{start: other.end, end: r.end},
			}}
		}
	}
	switch {
	case other.end <= r.start:
		//  other     r
		// s----e  s----e
		return r.Range()
	case other.end <= r.end:
		//     other
		// s------e
		//    s-------e
		//        r
		if other.end == r.end {
			return Range{}
		}
		return Range{parts: []ContiguousRange{{start: other.end, end: r.end}}}
	default:
		//      other
		// s------------e
		//    s-----e
		//       r
		return Range{}
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
