package codec

import (
	"fmt"
	"sort"
)

// Descriptor exposes the read-only metadata of a registered entity type.
type Descriptor interface {
	Type
	// Fields returns the local field names in declaration order.
	Fields() []string
	// FieldType returns the declared type of a plain (non-dictionary) field.
	FieldType(local string) (Type, bool)
	// MapValueType returns the value type of a dictionary-of-entities field.
	MapValueType(local string) (Type, bool)
	// Renames returns the wire/local rename table.
	Renames() Renames
}

// Renames is a bidirectional wire-name <-> local-name table.
type Renames struct {
	toLocal map[string]string
	toWire  map[string]string
}

// NewRenames builds a rename table from wire name -> local name pairs.
func NewRenames(wireToLocal map[string]string) Renames {
	r := Renames{
		toLocal: make(map[string]string, len(wireToLocal)),
		toWire:  make(map[string]string, len(wireToLocal)),
	}

	for wire, local := range wireToLocal {
		r.toLocal[wire] = local
		r.toWire[local] = wire
	}

	return r
}

// Local maps a wire name to its local name. Names without an entry map to themselves.
func (r Renames) Local(wire string) string {
	if local, ok := r.toLocal[wire]; ok {
		return local
	}

	return wire
}

// Wire maps a local name to its wire name. Names without an entry map to themselves.
func (r Renames) Wire(local string) string {
	if wire, ok := r.toWire[local]; ok {
		return wire
	}

	return local
}

// Pairs returns the wire -> local entries sorted by wire name.
func (r Renames) Pairs() [][2]string {
	pairs := make([][2]string, 0, len(r.toLocal))
	for wire, local := range r.toLocal {
		pairs = append(pairs, [2]string{wire, local})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })

	return pairs
}

// entity is implemented by every *Schema[T]; it is the type-erased view used by Coerce.
type entity interface {
	Descriptor
	build(obj map[string]any) (any, error)
	owns(v any) bool
}

// Schema is the descriptor for entity type T: a static table of field bindings plus a
// rename table. It is immutable after NewSchema returns.
type Schema[T any] struct {
	name    string
	renames Renames
	fields  map[string]Field[T]
	order   []string
}

// NewSchema declares the schema of T. Renames maps wire names to local names
// (for example "_links" -> "links"); it may be nil.
func NewSchema[T any](name string, renames map[string]string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		name:    name,
		renames: NewRenames(renames),
		fields:  make(map[string]Field[T], len(fields)),
		order:   make([]string, 0, len(fields)),
	}

	for _, f := range fields {
		if _, dup := s.fields[f.name]; dup {
			panic(fmt.Sprintf("codec: schema %s declares field %q twice", name, f.name))
		}

		s.fields[f.name] = f
		s.order = append(s.order, f.name)
	}

	return s
}

// Kind implements Type.
func (s *Schema[T]) Kind() Kind { return KindEntity }

// Name implements Type.
func (s *Schema[T]) Name() string { return s.name }

// Fields implements Descriptor.
func (s *Schema[T]) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)

	return out
}

// FieldType implements Descriptor.
func (s *Schema[T]) FieldType(local string) (Type, bool) {
	f, ok := s.fields[local]
	if !ok || f.dict {
		return nil, false
	}

	return f.typ, true
}

// MapValueType implements Descriptor.
func (s *Schema[T]) MapValueType(local string) (Type, bool) {
	f, ok := s.fields[local]
	if !ok || !f.dict {
		return nil, false
	}

	return f.typ, true
}

// Renames implements Descriptor.
func (s *Schema[T]) Renames() Renames { return s.renames }

func (s *Schema[T]) owns(v any) bool {
	switch v.(type) {
	case *T, T, []*T:
		return true
	}

	return false
}

func (s *Schema[T]) build(obj map[string]any) (any, error) {
	v, err := s.Build(obj)
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Build constructs a new T from a decoded JSON object. Unknown keys are skipped and
// null values leave the field unset.
func (s *Schema[T]) Build(obj map[string]any) (*T, error) {
	out := new(T)

	for key, raw := range obj {
		f, ok := s.fields[s.renames.Local(key)]
		if !ok {
			continue
		}

		var (
			value any
			err   error
		)

		if f.dict {
			value, err = coerceDict(raw, f.typ)
		} else {
			value, err = Coerce(raw, f.typ)
		}

		if err != nil {
			return nil, &FieldError{Type: s.name, Field: key, Err: err}
		}

		if value == nil {
			continue
		}

		f.set(out, value)
	}

	return out, nil
}

func coerceDict(raw any, valueType Type) (any, error) {
	switch obj := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		out := make(map[string]any, len(obj))

		for key, value := range obj {
			coerced, err := Coerce(value, valueType)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", key, err)
			}

			out[key] = coerced
		}

		return out, nil
	default:
		return nil, shapeError("object", raw)
	}
}
