package codec

import (
	"time"
)

// Field binds one local field name of T to its declared type and typed accessors.
type Field[T any] struct {
	name string
	typ  Type
	dict bool
	set  func(*T, any)
	get  func(*T) (any, bool)
}

// Name returns the local field name.
func (f Field[T]) Name() string { return f.name }

// Str binds a string field. Empty strings are treated as absent.
func Str[T any](name string, at func(*T) *string) Field[T] {
	return Field[T]{
		name: name,
		typ:  StringType,
		set: func(v *T, value any) {
			if s, ok := value.(string); ok {
				*at(v) = s
			}
		},
		get: func(v *T) (any, bool) {
			s := *at(v)
			return s, s != ""
		},
	}
}

// Int binds an integer field. Zero is treated as absent.
func Int[T any](name string, at func(*T) *int) Field[T] {
	return Field[T]{
		name: name,
		typ:  IntType,
		set: func(v *T, value any) {
			switch n := value.(type) {
			case int64:
				*at(v) = int(n)
			case int:
				*at(v) = n
			}
		},
		get: func(v *T) (any, bool) {
			n := *at(v)
			return n, n != 0
		},
	}
}

// Float binds a floating point field. Zero is treated as absent.
func Float[T any](name string, at func(*T) *float64) Field[T] {
	return Field[T]{
		name: name,
		typ:  FloatType,
		set: func(v *T, value any) {
			if f, ok := value.(float64); ok {
				*at(v) = f
			}
		},
		get: func(v *T) (any, bool) {
			f := *at(v)
			return f, f != 0
		},
	}
}

// Bool binds an optional boolean. A nil pointer is absent, so false can still be sent.
func Bool[T any](name string, at func(*T) **bool) Field[T] {
	return Field[T]{
		name: name,
		typ:  BoolType,
		set: func(v *T, value any) {
			if b, ok := value.(bool); ok {
				*at(v) = &b
			}
		},
		get: func(v *T) (any, bool) {
			b := *at(v)
			if b == nil {
				return nil, false
			}

			return *b, true
		},
	}
}

// Time binds a timestamp field. The zero time is treated as absent.
func Time[T any](name string, at func(*T) *time.Time) Field[T] {
	return Field[T]{
		name: name,
		typ:  TimeType,
		set: func(v *T, value any) {
			if ts, ok := value.(time.Time); ok {
				*at(v) = ts
			}
		},
		get: func(v *T) (any, bool) {
			ts := *at(v)
			if ts.IsZero() {
				return nil, false
			}

			return ts.UTC().Format(TimeLayout), true
		},
	}
}

// Strings binds a list of strings. Non-string elements are dropped.
func Strings[T any](name string, at func(*T) *[]string) Field[T] {
	return Field[T]{
		name: name,
		typ:  StringType,
		set: func(v *T, value any) {
			switch list := value.(type) {
			case []string:
				*at(v) = list
			case []any:
				out := make([]string, 0, len(list))

				for _, e := range list {
					if s, ok := e.(string); ok {
						out = append(out, s)
					}
				}

				*at(v) = out
			}
		},
		get: func(v *T) (any, bool) {
			list := *at(v)
			return list, list != nil
		},
	}
}

// Raw binds an opaque value that is passed through without interpretation.
func Raw[T any](name string, at func(*T) *any) Field[T] {
	return Field[T]{
		name: name,
		typ:  AnyType,
		set: func(v *T, value any) {
			*at(v) = value
		},
		get: func(v *T) (any, bool) {
			raw := *at(v)
			return raw, raw != nil
		},
	}
}

// Object binds an opaque JSON object, for payloads whose keys vary per instance.
func Object[T any](name string, at func(*T) *map[string]any) Field[T] {
	return Field[T]{
		name: name,
		typ:  AnyType,
		set: func(v *T, value any) {
			if obj, ok := value.(map[string]any); ok {
				*at(v) = obj
			}
		},
		get: func(v *T) (any, bool) {
			obj := *at(v)
			return obj, obj != nil
		},
	}
}

// Ref binds a nested entity.
func Ref[T, U any](name string, schema *Schema[U], at func(*T) **U) Field[T] {
	return Field[T]{
		name: name,
		typ:  schema,
		set: func(v *T, value any) {
			if e := asEntity[U](value); e != nil {
				*at(v) = e
			}
		},
		get: func(v *T) (any, bool) {
			e := *at(v)
			if e == nil {
				return nil, false
			}

			return schema.Encode(e), true
		},
	}
}

// List binds a sequence of nested entities. A single object on the wire becomes a
// one-element list.
func List[T, U any, S ~[]*U](name string, schema *Schema[U], at func(*T) *S) Field[T] {
	return Field[T]{
		name: name,
		typ:  schema,
		set: func(v *T, value any) {
			if list := asEntities[U](value); list != nil {
				*at(v) = S(list)
			}
		},
		get: func(v *T) (any, bool) {
			list := *at(v)
			if list == nil {
				return nil, false
			}

			return encodeList(schema, []*U(list)), true
		},
	}
}

// Dict binds a dictionary whose values are entities of one type.
func Dict[T, U any, M ~map[string]*U](name string, schema *Schema[U], at func(*T) *M) Field[T] {
	return Field[T]{
		name: name,
		typ:  schema,
		dict: true,
		set: func(v *T, value any) {
			obj, ok := value.(map[string]any)
			if !ok {
				return
			}

			out := make(M, len(obj))

			for key, e := range obj {
				if entity := asEntity[U](e); entity != nil {
					out[key] = entity
				}
			}

			*at(v) = out
		},
		get: func(v *T) (any, bool) {
			dict := *at(v)
			if dict == nil {
				return nil, false
			}

			out := make(map[string]any, len(dict))

			for key, e := range dict {
				if e != nil {
					out[key] = schema.Encode(e)
				}
			}

			return out, true
		},
	}
}

// DictList binds a dictionary whose values are either a single entity or a sequence of
// entities; both shapes load as a slice.
func DictList[T, U any, M ~map[string][]*U](name string, schema *Schema[U], at func(*T) *M) Field[T] {
	return Field[T]{
		name: name,
		typ:  schema,
		dict: true,
		set: func(v *T, value any) {
			obj, ok := value.(map[string]any)
			if !ok {
				return
			}

			out := make(M, len(obj))

			for key, e := range obj {
				if list := asEntities[U](e); list != nil {
					out[key] = list
				}
			}

			*at(v) = out
		},
		get: func(v *T) (any, bool) {
			dict := *at(v)
			if dict == nil {
				return nil, false
			}

			out := make(map[string]any, len(dict))

			for key, list := range dict {
				switch len(list) {
				case 0:
				case 1:
					out[key] = schema.Encode(list[0])
				default:
					out[key] = encodeList(schema, list)
				}
			}

			return out, true
		},
	}
}

func asEntity[U any](value any) *U {
	switch e := value.(type) {
	case *U:
		return e
	case U:
		return &e
	}

	return nil
}

func asEntities[U any](value any) []*U {
	switch list := value.(type) {
	case []*U:
		return list
	case []any:
		out := make([]*U, 0, len(list))

		for _, e := range list {
			if entity := asEntity[U](e); entity != nil {
				out = append(out, entity)
			}
		}

		return out
	}

	if e := asEntity[U](value); e != nil {
		return []*U{e}
	}

	return nil
}

func encodeList[U any](schema *Schema[U], list []*U) []any {
	out := make([]any, 0, len(list))

	for _, e := range list {
		if e != nil {
			out = append(out, schema.Encode(e))
		}
	}

	return out
}
