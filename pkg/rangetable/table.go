package rangetable

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

// Table hands out named, non-overlapping claims from a pool range.
type Table interface {
	Get(name string) (Entry, error)
	Claim(name string, r rangeset.Range, l labels.Set) error
	ClaimSize(name string, size float64, l labels.Set) (Entry, error)
	Release(name string) error
	Update(name string, l labels.Set) error

	Iterate() *Iterator

	Count() int
	Has(name string) bool

	IsFree(r rangeset.Range) bool
	Free() rangeset.Range
	Claimed() rangeset.Range

	GetAll() Entries
	GetByLabel(selector labels.Selector) Entries
}

type ValidationFn func(e Entry) error

type Option func(*table)

func WithLogger(log logr.Logger) Option {
	return func(r *table) { r.log = log }
}

// WithInitEntries preloads entries; they skip the validation function.
func WithInitEntries(entries ...Entry) Option {
	return func(r *table) { r.initEntries = append(r.initEntries, entries...) }
}

func WithValidation(v ValidationFn) Option {
	return func(r *table) { r.validateFn = v }
}

func New(pool rangeset.Range, opts ...Option) (Table, error) {
	r := &table{
		m:       new(sync.RWMutex),
		table:   map[string]Entry{},
		pool:    pool.Clone(),
		claimed: rangeset.New(),
		log:     logr.Discard(),
	}
	for _, o := range opts {
		o(r)
	}
	if pool.Empty() {
		return nil, fmt.Errorf("%w: pool %s is empty", rangeset.ErrInvalidArgument, pool.String())
	}

	var errm error
	for _, e := range r.initEntries {
		if err := r.add(e, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	r.initEntries = nil
	return r, errm
}

type table struct {
	m           *sync.RWMutex
	table       map[string]Entry
	pool        rangeset.Range
	claimed     rangeset.Range
	validateFn  ValidationFn
	initEntries []Entry
	log         logr.Logger
}

func (r *table) validate(e Entry, init bool) error {
	if e.Range().Empty() {
		return fmt.Errorf("entry %s claims an empty range", e.Name())
	}
	if !r.pool.Includes(e.Range()) {
		return fmt.Errorf("entry %s range %s does not fit in pool %s", e.Name(), e.Range().String(), r.pool.String())
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(e); err != nil {
			return err
		}
	}
	return nil
}

func (r *table) Get(name string) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.table[name]
	if !ok {
		return nil, fmt.Errorf("no match found for: %s", name)
	}
	return e, nil
}

func (r *table) Claim(name string, rng rangeset.Range, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(NewEntry(name, rng, l), false)
}

// ClaimSize claims size numbers at the start of the first free contiguous
// part that is large enough. A part unbounded below is claimed from 0 when
// [0, size) lies inside it. Parts rejected by validation are skipped.
func (r *table) ClaimSize(name string, size float64, l labels.Set) (Entry, error) {
	if !rangeset.IsNumber(size) || size <= 0 {
		return nil, fmt.Errorf("%w: size %v must be a positive number", rangeset.ErrInvalidArgument, size)
	}
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.table[name]; ok {
		return nil, fmt.Errorf("entry %s already exists", name)
	}
	var errm error
	for _, p := range r.pool.Subtract(r.claimed).ContiguousParts() {
		if p.Length() < size {
			continue
		}
		start := p.Start()
		if math.IsInf(start, -1) {
			start = 0
		}
		rng, err := rangeset.FromBounds(start, start+size)
		if err != nil || !p.Range().Includes(rng) {
			continue
		}
		e := NewEntry(name, rng, l)
		if err := r.add(e, false); err != nil {
			errm = errors.Join(errm, err)
			continue
		}
		return e, nil
	}
	if errm != nil {
		return nil, errm
	}
	return nil, fmt.Errorf("could not find a free range that fits size %v", size)
}

func (r *table) Release(name string) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(name)
}

func (r *table) Update(name string, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	e, ok := r.table[name]
	if !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	if err := r.validate(e, false); err != nil {
		return err
	}
	r.table[name] = NewEntry(name, e.Range(), l)
	return nil
}

func (r *table) Iterate() *Iterator {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

// iterate walks the entries in ascending order of their lowest number.
func (r *table) iterate() *Iterator {
	keys := make([]string, 0, len(r.table))
	for key := range r.table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i int, j int) bool {
		si := r.table[keys[i]].Range().EnclosingContiguousRange().Start()
		sj := r.table[keys[j]].Range().EnclosingContiguousRange().Start()
		if si != sj {
			return si < sj
		}
		return keys[i] < keys[j]
	})

	table := make(map[string]Entry, len(r.table))
	for k, v := range r.table {
		table[k] = v
	}
	return &Iterator{current: -1, keys: keys, table: table}
}

func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table) Has(name string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.table[name]
	return ok
}

// IsFree reports whether rng lies in the pool and overlaps no claim.
func (r *table) IsFree(rng rangeset.Range) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.pool.Includes(rng) && !r.claimed.Overlaps(rng)
}

func (r *table) Free() rangeset.Range {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.pool.Subtract(r.claimed)
}

func (r *table) Claimed() rangeset.Range {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed
}

func (r *table) add(e Entry, init bool) error {
	if err := r.validate(e, init); err != nil {
		return err
	}
	if _, ok := r.table[e.Name()]; ok {
		return fmt.Errorf("entry %s already exists", e.Name())
	}
	if r.claimed.Overlaps(e.Range()) {
		return fmt.Errorf("entry %s range %s overlaps claimed range %s", e.Name(), e.Range().String(), r.claimed.Intersect(e.Range()).String())
	}
	r.table[e.Name()] = e
	r.claimed = r.claimed.Add(e.Range())
	r.log.V(1).Info("claim", "name", e.Name(), "range", e.Range().String())
	return nil
}

func (r *table) delete(name string) error {
	e, ok := r.table[name]
	if !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	if err := r.validate(e, false); err != nil {
		return err
	}
	delete(r.table, name)
	r.claimed = r.claimed.Subtract(e.Range())
	r.log.V(1).Info("release", "name", name, "range", e.Range().String())
	return nil
}

func (r *table) GetAll() Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(Entries, 0, len(r.table))
	iter := r.iterate()
	for iter.Next() {
		entries = append(entries, iter.Value())
	}
	return entries
}

func (r *table) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	var entries Entries
	iter := r.iterate()
	for iter.Next() {
		if selector.Matches(iter.Value().Labels()) {
			entries = append(entries, iter.Value())
		}
	}
	return entries
}
