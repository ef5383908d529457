package diagram

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidBoxName is returned by [Boxes.Add] when the box name is empty.
	ErrInvalidBoxName = errors.New("box name must not be empty")

	// ErrDuplicateBox is returned by [Boxes.Add] when a box with the same name
	// is already registered. Box names are unique across the whole diagram.
	ErrDuplicateBox = errors.New("duplicate box name")
)

// Boxes indexes boxes by name and remembers declaration order.
//
// The zero value is not usable - use NewBoxes.
type Boxes struct {
	byName map[string]*Box
	order  []*Box
}

// NewBoxes creates an empty box registry.
func NewBoxes() *Boxes {
	return &Boxes{byName: make(map[string]*Box)}
}

// Add registers b. It returns ErrInvalidBoxName for an empty name and
// ErrDuplicateBox if the name is taken; the registry is unchanged on error.
func (r *Boxes) Add(b *Box) error {
	if b.Name == "" {
		return ErrInvalidBoxName
	}
	if _, exists := r.byName[b.Name]; exists {
		return ErrDuplicateBox
	}
	r.byName[b.Name] = b
	r.order = append(r.order, b)
	return nil
}

// Get returns the box with the given name and true, or nil and false.
func (r *Boxes) Get(name string) (*Box, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// All returns every registered box in declaration order.
// The slice is a copy; the boxes are shared.
func (r *Boxes) All() []*Box { return slices.Clone(r.order) }

// Len returns the number of registered boxes.
func (r *Boxes) Len() int { return len(r.order) }

// Leaves returns the boxes that are not containers, in declaration order.
func (r *Boxes) Leaves() []*Box {
	var out []*Box
	for _, b := range r.order {
		if !b.IsContainer() {
			out = append(out, b)
		}
	}
	return out
}
