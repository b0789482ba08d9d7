package vlantable

import (
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/rangetable"
	"k8s.io/apimachinery/pkg/labels"
)

type VLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(name, vlans string, d labels.Set) error
	Release(id int64) error
	ReleaseRange(name string) error
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	Free() rangeset.Range

	GetByLabel(selector labels.Selector) rangetable.Entries
}

var initEntries = []rangetable.Entry{
	rangetable.NewEntry(entryName(0), rangeset.MustFromBounds(0, 1), map[string]string{"type": "untagged", "status": "reserved"}),
	rangetable.NewEntry(entryName(1), rangeset.MustFromBounds(1, 2), map[string]string{"type": "untagged", "status": "reserved"}),
	rangetable.NewEntry(entryName(4095), rangeset.MustFromBounds(4095, 4096), map[string]string{"type": "untagged", "status": "reserved"}),
}

func New(log logr.Logger) (VLANTable, error) {
	t, err := rangetable.New(
		rangeset.MustFromBounds(0, 4096),
		rangetable.WithLogger(log),
		rangetable.WithInitEntries(initEntries...),
		rangetable.WithValidation(func(e rangetable.Entry) error {
			switch {
			case e.Range().Contains(0):
				return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", 0)
			case e.Range().Contains(1):
				return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", 1)
			case e.Range().Contains(4095):
				return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", 4095)
			}
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{table: t}, nil
}

type vlanTable struct {
	table rangetable.Table
}

func (r *vlanTable) Get(id int64) (labels.Set, error) {
	e, err := r.find(id)
	if err != nil {
		return nil, err
	}
	return e.Labels(), nil
}

func (r *vlanTable) Claim(id int64, d labels.Set) error {
	vlan, err := rangeset.FromBounds(float64(id), float64(id+1))
	if err != nil {
		return err
	}
	if !r.table.IsFree(vlan) {
		return fmt.Errorf("id %d is already claimed or out of range", id)
	}
	return r.table.Claim(entryName(id), vlan, d)
}

func (r *vlanTable) ClaimDynamic(d labels.Set) (int64, error) {
	id, err := r.FindFree()
	if err != nil {
		return 0, err
	}
	if err := r.Claim(id, d); err != nil {
		return 0, err
	}
	return id, nil
}

// ClaimRange claims a group of VLANs written like "100-200, 300" under name.
func (r *vlanTable) ClaimRange(name, vlans string, d labels.Set) error {
	rng, err := rangeset.Parse(vlans)
	if err != nil {
		return err
	}
	return r.table.Claim(name, rng, d)
}

// Release frees a VLAN claimed by id. Reserved VLANs and ids held by a
// ClaimRange group cannot be released this way.
func (r *vlanTable) Release(id int64) error {
	return r.table.Release(entryName(id))
}

func (r *vlanTable) ReleaseRange(name string) error {
	return r.table.Release(name)
}

func (r *vlanTable) Update(id int64, d labels.Set) error {
	e, err := r.find(id)
	if err != nil {
		return err
	}
	return r.table.Update(e.Name(), d)
}

// Count returns the number of claimed VLAN ids.
func (r *vlanTable) Count() int {
	return int(r.table.Claimed().Length())
}

func (r *vlanTable) Has(id int64) bool {
	return r.table.Claimed().Contains(float64(id))
}

func (r *vlanTable) IsFree(id int64) bool {
	return r.table.Free().Contains(float64(id))
}

func (r *vlanTable) FindFree() (int64, error) {
	free := r.table.Free()
	if free.Empty() {
		return -1, fmt.Errorf("no free VLAN found")
	}
	return int64(free.EnclosingContiguousRange().Start()), nil
}

func (r *vlanTable) Free() rangeset.Range {
	return r.table.Free()
}

func (r *vlanTable) GetByLabel(selector labels.Selector) rangetable.Entries {
	return r.table.GetByLabel(selector)
}

func (r *vlanTable) find(id int64) (rangetable.Entry, error) {
	iter := r.table.Iterate()
	for iter.Next() {
		if iter.Value().Range().Contains(float64(id)) {
			return iter.Value(), nil
		}
	}
	return nil, fmt.Errorf("VLAN %d not found", id)
}

func entryName(id int64) string {
	return "vlan-" + strconv.FormatInt(id, 10)
}
