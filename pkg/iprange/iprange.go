package iprange

import (
	"encoding/binary"
	"fmt"
	"math"
	"net/netip"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
)

const addrSpace = float64(1 << 32)

// FromIPRange maps the inclusive IPv4 range [from, to] onto the half-open
// numeric range [from, to+1).
func FromIPRange(r netipx.IPRange) (rangeset.Range, error) {
	if !r.IsValid() {
		return rangeset.Range{}, fmt.Errorf("ip range %s is invalid", r.String())
	}
	from, to := r.From().Unmap(), r.To().Unmap()
	if !from.Is4() || !to.Is4() {
		return rangeset.Range{}, fmt.Errorf("ip range %s is not an IPv4 range", r.String())
	}
	return rangeset.FromBounds(float64(addrToUint32(from)), float64(addrToUint32(to))+1)
}

// FromIPSet converts every range of s, see FromIPRange.
func FromIPSet(s *netipx.IPSet) (rangeset.Range, error) {
	var out rangeset.Range
	if s == nil {
		return out, nil
	}
	for _, r := range s.Ranges() {
		rr, err := FromIPRange(r)
		if err != nil {
			return rangeset.Range{}, err
		}
		out = out.Add(rr)
	}
	return out, nil
}

// ToIPRanges converts r back into inclusive IPv4 ranges. Every part must have
// integer bounds inside the IPv4 address space.
func ToIPRanges(r rangeset.Range) ([]netipx.IPRange, error) {
	parts := r.ContiguousParts()
	out := make([]netipx.IPRange, 0, len(parts))
	for _, p := range parts {
		if p.Empty() {
			continue
		}
		if !isAddrIndex(p.Start()) || !isAddrIndex(p.End()-1) {
			return nil, fmt.Errorf("%w: %s does not fit the IPv4 address space", rangeset.ErrInvalidArgument, p.String())
		}
		out = append(out, netipx.IPRangeFrom(
			uint32ToAddr(uint32(p.Start())),
			uint32ToAddr(uint32(p.End()-1)),
		))
	}
	return out, nil
}

func ToIPSet(r rangeset.Range) (*netipx.IPSet, error) {
	ranges, err := ToIPRanges(r)
	if err != nil {
		return nil, err
	}
	var b netipx.IPSetBuilder
	for _, ipr := range ranges {
		b.AddRange(ipr)
	}
	return b.IPSet()
}

func isAddrIndex(v float64) bool {
	return v >= 0 && v < addrSpace && v == math.Trunc(v)
}

func addrToUint32(a netip.Addr) uint32 {
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}

func uint32ToAddr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
