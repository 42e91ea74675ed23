package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Result is the outcome of Decode: a single entity when the document root is an object,
// or a sequence when the root is an array.
type Result[T any] struct {
	one    *T
	many   []*T
	isMany bool
}

// IsMany reports whether the document root was an array.
func (r Result[T]) IsMany() bool { return r.isMany }

// Single returns the entity decoded from an object root.
func (r Result[T]) Single() (*T, bool) { return r.one, !r.isMany }

// Many returns the entities decoded from an array root.
func (r Result[T]) Many() ([]*T, bool) { return r.many, r.isMany }

// All returns the decoded entities as a slice regardless of root shape.
func (r Result[T]) All() []*T {
	if r.isMany {
		return r.many
	}

	return []*T{r.one}
}

// Parse reads a JSON document into plain Go values. Numbers are kept as json.Number so
// integer precision survives until coercion.
func Parse(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedResponse)
	}

	return root, nil
}

// Decode deserializes a JSON document against the schema of T.
func Decode[T any](data []byte, schema *Schema[T]) (Result[T], error) {
	root, err := Parse(data)
	if err != nil {
		return Result[T]{}, err
	}

	return resolve(root, schema)
}

// DecodeOne deserializes a document whose root must be an object.
func DecodeOne[T any](data []byte, schema *Schema[T]) (*T, error) {
	res, err := Decode(data, schema)
	if err != nil {
		return nil, err
	}

	one, ok := res.Single()
	if !ok {
		return nil, fmt.Errorf("%w: expected %s object, got array", ErrUnexpectedShape, schema.Name())
	}

	return one, nil
}

// DecodeMany deserializes a document whose root must be an array.
func DecodeMany[T any](data []byte, schema *Schema[T]) ([]*T, error) {
	res, err := Decode(data, schema)
	if err != nil {
		return nil, err
	}

	many, ok := res.Many()
	if !ok {
		return nil, fmt.Errorf("%w: expected %s array, got object", ErrUnexpectedShape, schema.Name())
	}

	return many, nil
}

// Unmarshal decodes an object document into v. It backs the entities' UnmarshalJSON.
func Unmarshal[T any](data []byte, schema *Schema[T], v *T) error {
	one, err := DecodeOne(data, schema)
	if err != nil {
		return err
	}

	*v = *one

	return nil
}

func resolve[T any](root any, schema *Schema[T]) (Result[T], error) {
	switch v := root.(type) {
	case map[string]any:
		one, err := schema.Build(v)
		if err != nil {
			return Result[T]{}, err
		}

		return Result[T]{one: one}, nil
	case []any:
		many := make([]*T, 0, len(v))

		for i, e := range v {
			if e == nil {
				continue
			}

			obj, ok := e.(map[string]any)
			if !ok {
				return Result[T]{}, fmt.Errorf("[%d]: %w", i, shapeError(schema.Name()+" object", e))
			}

			one, err := schema.Build(obj)
			if err != nil {
				return Result[T]{}, fmt.Errorf("[%d]: %w", i, err)
			}

			many = append(many, one)
		}

		return Result[T]{many: many, isMany: true}, nil
	default:
		return Result[T]{}, shapeError("object or array", root)
	}
}

// DecodeValue deserializes a document against any target type. An array root yields
// []any; an object root yields the coerced value.
func DecodeValue(data []byte, target Type) (any, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}

	switch root.(type) {
	case map[string]any, []any:
		return Coerce(root, target)
	default:
		return nil, shapeError("object or array", root)
	}
}
