package lens

import (
	"reflect"

	"github.com/obrok/lens/collections"
)

// Equal reports whether a and b hold the same Data. Assocs compare as
// unordered key sets (an *Object equals a map[string]any with the same
// entries), sequences and tuples element by element, sets by membership.
// Scalars use reflect.DeepEqual.
func Equal(a, b any) bool {
	shape := ShapeOf(a)
	if shape != ShapeOf(b) {
		return false
	}
	switch shape {
	case ShapeAssoc:
		left, _ := entries("equal", a)
		right, _ := entries("equal", b)
		if len(left) != len(right) {
			return false
		}
		for _, p := range left {
			found, _ := lookup("equal", b, p.First)
			v, ok := found.Get()
			if !ok || !Equal(p.Second, v) {
				return false
			}
		}
		return true
	case ShapeSequence, ShapeTuple:
		left, _ := positional("equal", a)
		right, _ := positional("equal", b)
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !Equal(left[i], right[i]) {
				return false
			}
		}
		return true
	case ShapeSet:
		return a.(*collections.Set[any]).Equals(b.(*collections.Set[any]))
	default:
		return reflect.DeepEqual(a, b)
	}
}
