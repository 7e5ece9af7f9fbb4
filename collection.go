package lens

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/obrok/lens/collections"
	lenserr "github.com/obrok/lens/errors"
	"github.com/obrok/lens/functional"
)

type allLens struct{}

// All focuses on every element of a container in enumeration order.
// Sequences rebuild as []any and tuples as Tuple. Assocs and sets are
// rebuilt as a plain []any of their elements (assoc entries are
// Tuple{key, value}); wrap the lens with Into to get the container back.
func All() Lens {
	return allLens{}
}

func (allLens) Focus(data any, fn Transform) ([]any, any, error) {
	items, err := elements("all", data)
	if err != nil {
		return nil, nil, err
	}
	results := make([]any, len(items))
	for i, item := range items {
		results[i], items[i] = fn(item)
	}
	if _, ok := data.(Tuple); ok {
		return results, Tuple(items), nil
	}
	return results, items, nil
}

func (allLens) String() string { return "all" }

type mapValuesLens struct{}

// MapValues focuses on every value of an assoc and keeps the assoc's type
// and keys.
func MapValues() Lens {
	return mapValuesLens{}
}

func (mapValuesLens) Focus(data any, fn Transform) ([]any, any, error) {
	pairs, err := entries("map_values", data)
	if err != nil {
		return nil, nil, err
	}
	results := make([]any, len(pairs))
	for i, p := range pairs {
		results[i], pairs[i].Second = fn(p.Second)
	}
	return results, rebuildAssoc(data, pairs), nil
}

func (mapValuesLens) String() string { return "map_values" }

type mapKeysLens struct{}

// MapKeys focuses on every key of an assoc. Replacement keys must be strings;
// when two keys collide the later value wins.
func MapKeys() Lens {
	return mapKeysLens{}
}

func (mapKeysLens) Focus(data any, fn Transform) ([]any, any, error) {
	pairs, err := entries("map_keys", data)
	if err != nil {
		return nil, nil, err
	}
	results := make([]any, len(pairs))
	for i, p := range pairs {
		var replacement any
		results[i], replacement = fn(p.First)
		key, ok := replacement.(string)
		if !ok {
			return nil, nil, lenserr.InvalidShape("map_keys", replacement)
		}
		pairs[i].First = key
	}
	return results, rebuildAssoc(data, pairs), nil
}

func (mapKeysLens) String() string { return "map_keys" }

type filterLens struct {
	pred func(any) bool
	keep bool
}

// Filter focuses on the data itself when pred holds and on nothing
// otherwise. Combined with Seq it selects the foci of another lens:
// Seq(All(), Filter(isOdd)).
func Filter(pred func(any) bool) Lens {
	return filterLens{pred: pred, keep: true}
}

// Reject is Filter with the predicate negated.
func Reject(pred func(any) bool) Lens {
	return filterLens{pred: pred, keep: false}
}

// Filtered restricts the foci of l to those satisfying pred.
func Filtered(l Lens, pred func(any) bool) Lens {
	return Seq(l, Filter(pred))
}

// Rejected restricts the foci of l to those failing pred.
func Rejected(l Lens, pred func(any) bool) Lens {
	return Seq(l, Reject(pred))
}

func (f filterLens) Focus(data any, fn Transform) ([]any, any, error) {
	if f.pred(data) != f.keep {
		return []any{}, data, nil
	}
	r, u := fn(data)
	return []any{r}, u, nil
}

func (f filterLens) String() string {
	if f.keep {
		return "filter"
	}
	return "reject"
}

type intoLens struct {
	lens   Lens
	target any
}

// Into runs l and then collects the updated data into a copy of target.
// Supported targets are []any, Tuple, map[string]any, *Object,
// *collections.Set[any] and pointers to structs, which are filled with
// mapstructure. Assoc targets take Tuple{key, value} elements.
func Into(l Lens, target any) Lens {
	return intoLens{lens: l, target: target}
}

func (i intoLens) Focus(data any, fn Transform) ([]any, any, error) {
	res, updated, err := i.lens.Focus(data, fn)
	if err != nil {
		return nil, nil, err
	}
	collected, err := collect(updated, i.target)
	if err != nil {
		return nil, nil, err
	}
	return res, collected, nil
}

func (i intoLens) String() string {
	return fmt.Sprintf("into(%s, %T)", lensName(i.lens), i.target)
}

func collect(data any, target any) (any, error) {
	switch t := target.(type) {
	case []any:
		items, err := elements("into", data)
		if err != nil {
			return nil, err
		}
		return append(slices.Clone(t), items...), nil
	case Tuple:
		items, err := elements("into", data)
		if err != nil {
			return nil, err
		}
		return append(slices.Clone(t), items...), nil
	case map[string]any, *Object:
		pairs, err := assocPairs(data)
		if err != nil {
			return nil, err
		}
		base, err := entries("into", t)
		if err != nil {
			return nil, err
		}
		return mergeAssoc(t, base, pairs), nil
	case *collections.Set[any]:
		items, err := elements("into", data)
		if err != nil {
			return nil, err
		}
		out := collections.NewSet[any]()
		if t != nil {
			out = t.Clone()
		}
		for _, item := range items {
			if !hashable(item) {
				return nil, lenserr.InvalidShape("into", item)
			}
			out.Add(item)
		}
		return out, nil
	default:
		return decodeStruct(data, target)
	}
}

// assocPairs reads data as key/value pairs: either an assoc or a list of
// Tuple{key, value}.
func assocPairs(data any) ([]functional.Pair[string, any], error) {
	if ShapeOf(data) == ShapeAssoc {
		return entries("into", data)
	}
	items, err := elements("into", data)
	if err != nil {
		return nil, err
	}
	pairs := make([]functional.Pair[string, any], len(items))
	for i, item := range items {
		if pairs[i], err = entryOf("into", item); err != nil {
			return nil, err
		}
	}
	return pairs, nil
}

func mergeAssoc(like any, base, extra []functional.Pair[string, any]) any {
	if m, ok := like.(map[string]any); ok {
		out := maps.Clone(m)
		if out == nil {
			out = make(map[string]any, len(extra))
		}
		for _, p := range extra {
			k, v := p.Unpack()
			out[k] = v
		}
		return out
	}
	// Keep the target's keys first, then the collected ones in order.
	obj := rebuildAssoc(like, base).(*Object)
	for _, p := range extra {
		obj.Set(p.Unpack())
	}
	return obj
}

func decodeStruct(data any, target any) (any, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, lenserr.InvalidShape("into", target)
	}
	pairs, err := assocPairs(data)
	if err != nil {
		return nil, err
	}
	input := make(map[string]any, len(pairs))
	for _, p := range pairs {
		input[p.First] = Plain(p.Second)
	}

	out := reflect.New(rv.Elem().Type())
	out.Elem().Set(rv.Elem())
	if err := mapstructure.Decode(input, out.Interface()); err != nil {
		return nil, lenserr.InvalidShape("into", data).WithCause(err)
	}
	return out.Interface(), nil
}
