package rangetable

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

type Entry interface {
	Name() string
	Range() rangeset.Range
	Labels() labels.Set
	String() string
}

type entry struct {
	name   string
	rng    rangeset.Range
	labels labels.Set
}

type Entries []Entry

func (r entry) Name() string          { return r.name }
func (r entry) Range() rangeset.Range { return r.rng }
func (r entry) Labels() labels.Set    { return r.labels }
func (r entry) String() string {
	return fmt.Sprintf("name: %s, range: %s, labels: %s", r.name, r.rng.String(), r.labels.String())
}

func NewEntry(name string, rng rangeset.Range, l labels.Set) Entry {
	return entry{
		name:   name,
		rng:    rng.Clone(),
		labels: l,
	}
}
