package iprange

import (
	"fmt"
	"net/netip"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
)

type Option func(*Pool)

func WithLogger(log logr.Logger) Option {
	return func(p *Pool) { p.log = log }
}

// Pool tracks which addresses of an IPv4 range are claimed.
type Pool struct {
	m       *sync.RWMutex
	ipRange netipx.IPRange
	space   rangeset.Range
	claimed rangeset.Range
	log     logr.Logger
}

// NewPool creates a pool for a range like "10.0.0.10-10.0.0.20".
func NewPool(ipRange string, opts ...Option) (*Pool, error) {
	r, err := netipx.ParseIPRange(ipRange)
	if err != nil {
		return nil, err
	}
	space, err := FromIPRange(r)
	if err != nil {
		return nil, err
	}
	p := &Pool{
		m:       new(sync.RWMutex),
		ipRange: r,
		space:   space,
		log:     logr.Discard(),
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

func (r *Pool) Claim(addr string) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	return r.ClaimRange(netipx.IPRangeFrom(claimIP, claimIP))
}

// ClaimRange claims every address of ipr; it fails when any of them is
// already claimed or outside the pool.
func (r *Pool) ClaimRange(ipr netipx.IPRange) error {
	claim, err := FromIPRange(ipr)
	if err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if !r.space.Includes(claim) {
		return fmt.Errorf("claim failed %s does not fit in the range from %s to %s", ipr.String(), r.ipRange.From().String(), r.ipRange.To().String())
	}
	if r.claimed.Overlaps(claim) {
		return fmt.Errorf("claim failed %s already claimed", ipr.String())
	}
	r.claimed = r.claimed.Add(claim)
	r.log.V(1).Info("claimed", "range", ipr.String())
	return nil
}

func (r *Pool) Release(addr string) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	release, err := FromIPRange(netipx.IPRangeFrom(claimIP, claimIP))
	if err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()
	r.claimed = r.claimed.Subtract(release)
	r.log.V(1).Info("released", "addr", addr)
	return nil
}

func (r *Pool) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return int(r.claimed.Length())
}

func (r *Pool) Has(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	r.m.RLock()
	defer r.m.RUnlock()
	return r.claimed.Contains(float64(addrToUint32(claimIP)))
}

func (r *Pool) IsFree(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	r.m.RLock()
	defer r.m.RUnlock()
	return !r.claimed.Contains(float64(addrToUint32(claimIP)))
}

// Free returns the unclaimed part of the pool.
func (r *Pool) Free() rangeset.Range {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.space.Subtract(r.claimed)
}

func (r *Pool) Claimed() (*netipx.IPSet, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return ToIPSet(r.claimed)
}

// FindFree returns the lowest unclaimed address.
func (r *Pool) FindFree() (netip.Addr, error) {
	free := r.Free()
	if free.Empty() {
		return netip.Addr{}, fmt.Errorf("no free ip in the range from %s to %s", r.ipRange.From().String(), r.ipRange.To().String())
	}
	return uint32ToAddr(uint32(free.EnclosingContiguousRange().Start())), nil
}

func (r *Pool) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	claimIP = claimIP.Unmap()
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return claimIP, nil
}
