package codec

import (
	"fmt"
	"sort"
)

// Registry maps entity names to their descriptors. It is built once and never mutated,
// so concurrent reads need no locking.
type Registry struct {
	byName map[string]Descriptor
}

// NewRegistry builds a registry from the given descriptors.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{byName: make(map[string]Descriptor, len(descs))}

	for _, d := range descs {
		if _, dup := r.byName[d.Name()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSchema, d.Name())
		}

		r.byName[d.Name()] = d
	}

	return r, nil
}

// MustRegistry is NewRegistry for package-level initialisation.
func MustRegistry(descs ...Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}

	return r
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns the registered entity names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// CoerceNamed coerces raw against the entity registered under name. An unknown name is
// not an error; the value is returned as plain JSON data.
func (r *Registry) CoerceNamed(raw any, name string) (any, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return Coerce(raw, nil)
	}

	return Coerce(raw, d)
}

// DecodeNamed deserializes a JSON document against the entity registered under name.
func (r *Registry) DecodeNamed(data []byte, name string) (any, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return DecodeValue(data, nil)
	}

	return DecodeValue(data, d)
}
