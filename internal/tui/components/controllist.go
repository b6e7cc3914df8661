package components

import (
	"github.com/alexisbeaulieu97/glaze/internal/params"
)

// ControlEntry is one editable parameter with its current value.
type ControlEntry struct {
	Spec  params.FieldSpec
	Value string
	Ratio float64
}

// ControlList is the ordered set of controls for a parameter snapshot.
type ControlList struct {
	entries []ControlEntry
}

// NewControlList builds entries in field table order.
func NewControlList(set params.Set) ControlList {
	specs := params.Fields()
	entries := make([]ControlEntry, 0, len(specs))
	for _, spec := range specs {
		value, _ := set.Get(spec.Name)
		entries = append(entries, ControlEntry{Spec: spec, Value: value, Ratio: set.Ratio(spec.Name)})
	}
	return ControlList{entries: entries}
}

// Entries returns the ordered control entries.
func (c ControlList) Entries() []ControlEntry {
	clone := make([]ControlEntry, len(c.entries))
	copy(clone, c.entries)
	return clone
}

// Len returns the number of controls.
func (c ControlList) Len() int {
	return len(c.entries)
}
