// Package lens provides composable lenses over nested, immutable data.
//
// A Lens describes zero or more locations inside a value built from
// associative containers (*Object, map[string]any), sequences ([]any),
// fixed-arity tuples (Tuple) and sets (*collections.Set[any]). Evaluating a
// lens against data either lists the focused values or returns an updated
// copy of the data; the input is never modified.
//
// # Building lenses
//
// Primitives look inside one shape of container:
//
//	lens.Key("user")          // value at a key, nil when absent
//	lens.KeyStrict("user")    // fails with KEY_NOT_FOUND when absent
//	lens.KeyOptional("user")  // no focus when absent
//	lens.At(2)                // element at an index
//	lens.All()                // every element
//	lens.Front(), lens.Back() // insertion points
//
// Combinators build lenses from lenses:
//
//	lens.Seq(lens.Key("items"), lens.All())
//	lens.Both(lens.Key("a"), lens.Key("b"))
//	lens.Recur(lens.Seq(lens.Key("children"), lens.All()))
//
// The Chain builder is the pipe form of every constructor:
//
//	odd := lens.Pipe(lens.Key("items")).All().Key("value").Filter(isOdd)
//
// # Evaluating
//
//	values, err := lens.ToList(odd, data)
//	updated, err := lens.Map(odd, data, func(v any) any { return v.(int) + 1 })
//
// Results follow a fixed order: for Seq and Both the first lens's results come
// first, collections are visited in enumeration order, and Recur reports a
// node's descendants before the node itself.
//
// # Ordering hazard
//
// Both (and SeqBoth, Multiple) runs its second lens against the data the
// first lens already rewrote. If the first lens changes the structure the
// second one navigates, the second lens sees the new structure:
//
//	lens.GetAndMap(lens.Both(lens.Root(), lens.Key("a")), data, f) // may fail with INVALID_SHAPE
//
// Lenses are stateless values and can be shared between goroutines.
package lens
