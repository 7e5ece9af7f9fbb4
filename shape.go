package lens

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/obrok/lens/collections"
	lenserr "github.com/obrok/lens/errors"
	"github.com/obrok/lens/functional"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an associative container that keeps insertion order.
type Object = orderedmap.OrderedMap[string, any]

// Tuple is a fixed-arity sequence. Lenses replace its elements but never
// change its length.
type Tuple []any

// Shape classifies a Data value. Every value has exactly one shape.
type Shape int

const (
	// ShapeScalar is anything a lens cannot look inside, nil included.
	ShapeScalar Shape = iota
	// ShapeAssoc covers *Object and map[string]any.
	ShapeAssoc
	// ShapeSequence covers []any.
	ShapeSequence
	// ShapeTuple covers Tuple.
	ShapeTuple
	// ShapeSet covers *collections.Set[any].
	ShapeSet
)

// String returns the string representation of Shape.
func (s Shape) String() string {
	switch s {
	case ShapeAssoc:
		return "assoc"
	case ShapeSequence:
		return "sequence"
	case ShapeTuple:
		return "tuple"
	case ShapeSet:
		return "set"
	default:
		return "scalar"
	}
}

// ShapeOf classifies v.
func ShapeOf(v any) Shape {
	switch t := v.(type) {
	case *Object:
		if t == nil {
			return ShapeScalar
		}
		return ShapeAssoc
	case map[string]any:
		return ShapeAssoc
	case []any:
		return ShapeSequence
	case Tuple:
		return ShapeTuple
	case *collections.Set[any]:
		if t == nil {
			return ShapeScalar
		}
		return ShapeSet
	default:
		return ShapeScalar
	}
}

// NewObject builds an *Object from alternating keys and values.
// It panics if kv has odd length or a key is not a string.
func NewObject(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("lens: NewObject needs key/value pairs")
	}
	o := orderedmap.New[string, any]()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("lens: NewObject key %v is %T, not string", kv[i], kv[i]))
		}
		o.Set(key, kv[i+1])
	}
	return o
}

func copyObject(o *Object) *Object {
	out := orderedmap.New[string, any]()
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}

// lookup reads key from an assoc.
func lookup(op string, data any, key string) (functional.Option[any], error) {
	switch m := data.(type) {
	case *Object:
		if m != nil {
			if v, ok := m.Get(key); ok {
				return functional.Some(v), nil
			}
			return functional.None[any](), nil
		}
	case map[string]any:
		if v, ok := m[key]; ok {
			return functional.Some(v), nil
		}
		return functional.None[any](), nil
	}
	return functional.None[any](), lenserr.InvalidShape(op, data)
}

// assign returns a copy of the assoc with key set to value.
func assign(op string, data any, key string, value any) (any, error) {
	switch m := data.(type) {
	case *Object:
		if m != nil {
			out := copyObject(m)
			out.Set(key, value)
			return out, nil
		}
	case map[string]any:
		out := make(map[string]any, len(m)+1)
		maps.Copy(out, m)
		out[key] = value
		return out, nil
	}
	return nil, lenserr.InvalidShape(op, data)
}

// entries lists an assoc's key/value pairs in enumeration order.
func entries(op string, data any) ([]functional.Pair[string, any], error) {
	switch m := data.(type) {
	case *Object:
		if m != nil {
			out := make([]functional.Pair[string, any], 0, m.Len())
			for pair := m.Oldest(); pair != nil; pair = pair.Next() {
				out = append(out, functional.NewPair(pair.Key, pair.Value))
			}
			return out, nil
		}
	case map[string]any:
		out := make([]functional.Pair[string, any], 0, len(m))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			out = append(out, functional.NewPair(k, m[k]))
		}
		return out, nil
	}
	return nil, lenserr.InvalidShape(op, data)
}

// rebuildAssoc builds an assoc of the same kind as like from pairs.
func rebuildAssoc(like any, pairs []functional.Pair[string, any]) any {
	if _, ok := like.(map[string]any); ok {
		out := make(map[string]any, len(pairs))
		for _, p := range pairs {
			k, v := p.Unpack()
			out[k] = v
		}
		return out
	}
	out := orderedmap.New[string, any]()
	for _, p := range pairs {
		out.Set(p.Unpack())
	}
	return out
}

// elements enumerates any enumerable value. Assoc entries come out as
// two-element tuples of key and value.
func elements(op string, data any) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return slices.Clone(v), nil
	case Tuple:
		return slices.Clone([]any(v)), nil
	case *collections.Set[any]:
		if v != nil {
			return v.ToSlice(), nil
		}
	case *Object, map[string]any:
		pairs, err := entries(op, data)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(pairs))
		for i, p := range pairs {
			k, v := p.Unpack()
			out[i] = Tuple{k, v}
		}
		return out, nil
	}
	return nil, lenserr.InvalidShape(op, data)
}

// positional returns the elements of a sequence or tuple without copying.
func positional(op string, data any) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return v, nil
	case Tuple:
		return v, nil
	}
	return nil, lenserr.InvalidShape(op, data)
}

// replaceAt returns a copy of a sequence or tuple with index i replaced.
func replaceAt(data any, items []any, i int, value any) any {
	out := slices.Clone(items)
	out[i] = value
	if _, ok := data.(Tuple); ok {
		return Tuple(out)
	}
	return out
}

// entryOf unpacks a two-element tuple with a string key.
func entryOf(op string, v any) (functional.Pair[string, any], error) {
	t, ok := v.(Tuple)
	if !ok || len(t) != 2 {
		return functional.Pair[string, any]{}, lenserr.InvalidShape(op, v)
	}
	key, ok := t[0].(string)
	if !ok {
		return functional.Pair[string, any]{}, lenserr.InvalidShape(op, t[0])
	}
	return functional.NewPair(key, t[1]), nil
}

// hashable reports whether v can be stored in a set.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}

// Plain converts Data into the plain Go values encoding/json, mapstructure and
// expression engines understand: assocs become map[string]any, tuples and sets
// become []any. Scalars are returned as is.
func Plain(v any) any {
	switch t := v.(type) {
	case *Object, map[string]any:
		pairs, _ := entries("plain", t)
		out := make(map[string]any, len(pairs))
		for _, p := range pairs {
			out[p.First] = Plain(p.Second)
		}
		return out
	case []any, Tuple, *collections.Set[any]:
		items, err := elements("plain", t)
		if err != nil {
			return v
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = Plain(item)
		}
		return out
	default:
		return v
	}
}
