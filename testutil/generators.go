// Package testutil provides rapid generators for property-based tests of lenses.
package testutil

import (
	"fmt"

	"github.com/obrok/lens"
	"pgregory.net/rapid"
)

// KeyGen generates short lowercase keys.
func KeyGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z]{1,6}`)
}

// ScalarGen generates ints, strings, bools and nil.
func ScalarGen() *rapid.Generator[any] {
	return rapid.OneOf(
		rapid.IntRange(-1000, 1000).AsAny(),
		rapid.StringMatching(`[a-zA-Z0-9 ]{0,12}`).AsAny(),
		rapid.Bool().AsAny(),
		rapid.Just[any](nil),
	)
}

// IntsGen generates a []any of ints.
func IntsGen(minSize, maxSize int) *rapid.Generator[[]any] {
	return rapid.Custom(func(t *rapid.T) []any {
		ints := rapid.SliceOfN(rapid.IntRange(-100, 100), minSize, maxSize).Draw(t, "ints")
		out := make([]any, len(ints))
		for i, v := range ints {
			out[i] = v
		}
		return out
	})
}

// ObjectGen generates an *Object with distinct keys and values from valueGen.
func ObjectGen(valueGen *rapid.Generator[any], maxSize int) *rapid.Generator[*lens.Object] {
	return rapid.Custom(func(t *rapid.T) *lens.Object {
		keys := rapid.SliceOfNDistinct(KeyGen(), 0, maxSize, rapid.ID[string]).Draw(t, "keys")
		obj := lens.NewObject()
		for _, k := range keys {
			obj.Set(k, valueGen.Draw(t, "value"))
		}
		return obj
	})
}

// TreeGen generates arbitrary nested Data up to depth: objects, plain maps,
// sequences and tuples around scalars.
func TreeGen(depth int) *rapid.Generator[any] {
	return rapid.Custom(func(t *rapid.T) any {
		if depth <= 0 {
			return ScalarGen().Draw(t, "leaf")
		}
		child := TreeGen(depth - 1)
		switch rapid.IntRange(0, 4).Draw(t, "kind") {
		case 0:
			return ScalarGen().Draw(t, "leaf")
		case 1:
			return ObjectGen(child, 4).Draw(t, "object")
		case 2:
			return rapid.MapOfN(KeyGen(), child, 0, 4).Draw(t, "map")
		case 3:
			return rapid.SliceOfN(child, 0, 4).Draw(t, "sequence")
		default:
			return lens.Tuple(rapid.SliceOfN(child, 0, 3).Draw(t, "tuple"))
		}
	})
}

// RecordGen generates records shaped like
//
//	{"id": int, "name": string, "tags": [int...], "children": [record...]}
//
// with children nested up to depth.
func RecordGen(depth int) *rapid.Generator[*lens.Object] {
	return rapid.Custom(func(t *rapid.T) *lens.Object {
		children := []any{}
		if depth > 0 {
			for _, c := range rapid.SliceOfN(RecordGen(depth-1), 0, 3).Draw(t, "children") {
				children = append(children, c)
			}
		}
		return lens.NewObject(
			"id", rapid.IntRange(0, 1000).Draw(t, "id"),
			"name", rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "name"),
			"tags", IntsGen(0, 5).Draw(t, "tags"),
			"children", children,
		)
	})
}

// IsEven is an int predicate for filter lenses.
func IsEven(v any) bool {
	n, ok := v.(int)
	return ok && n%2 == 0
}

// RecordLensGen generates lenses that are valid on RecordGen data. Every
// generated lens keeps its shape under the identity transform.
func RecordLensGen(depth int) *rapid.Generator[lens.Lens] {
	return rapid.Custom(func(t *rapid.T) lens.Lens {
		leaves := []lens.Lens{
			lens.Root(),
			lens.Empty(),
			lens.Key("id"),
			lens.KeyStrict("name"),
			lens.KeyOptional("missing"),
			lens.Seq(lens.Key("tags"), lens.All()),
			lens.Filtered(lens.Seq(lens.Key("tags"), lens.All()), IsEven),
			lens.Rejected(lens.Seq(lens.Key("tags"), lens.All()), IsEven),
			lens.Recur(lens.Seq(lens.Key("children"), lens.All())),
			lens.Seq(lens.Key("children"), lens.All()),
			lens.MapValues(),
			lens.Const("c"),
		}
		if depth <= 0 {
			return rapid.SampledFrom(leaves).Draw(t, "leaf")
		}
		sub := RecordLensGen(depth - 1)
		switch rapid.IntRange(0, 5).Draw(t, "combinator") {
		case 0:
			return rapid.SampledFrom(leaves).Draw(t, "leaf")
		case 1:
			return lens.Both(sub.Draw(t, "first"), sub.Draw(t, "second"))
		case 2:
			return lens.Either(sub.Draw(t, "primary"), sub.Draw(t, "fallback"))
		case 3:
			return lens.Multiple(rapid.SliceOfN(sub, 0, 3).Draw(t, "lenses")...)
		case 4:
			// Descend into a child record before continuing.
			return lens.Seq(lens.Seq(lens.Key("children"), lens.All()), sub.Draw(t, "inner"))
		default:
			return lens.SeqBoth(lens.Recur(lens.Seq(lens.Key("children"), lens.All())), sub.Draw(t, "inner"))
		}
	})
}

// Describe renders a lens for failure messages.
func Describe(l lens.Lens) string {
	if s, ok := l.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", l)
}
