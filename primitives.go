package lens

import (
	"fmt"
	"slices"
	"strings"

	lenserr "github.com/obrok/lens/errors"
)

type emptyLens struct{}

// Empty focuses on nothing and leaves data unchanged.
func Empty() Lens {
	return emptyLens{}
}

func (emptyLens) Focus(data any, _ Transform) ([]any, any, error) {
	return []any{}, data, nil
}

func (emptyLens) String() string { return "empty" }

type rootLens struct{}

// Root focuses on the whole input.
func Root() Lens {
	return rootLens{}
}

func (rootLens) Focus(data any, fn Transform) ([]any, any, error) {
	r, u := fn(data)
	return []any{r}, u, nil
}

func (rootLens) String() string { return "root" }

type constLens struct {
	value any
}

// Const focuses on value regardless of the input. The replacement produced
// by the transform is discarded since there is nowhere to write it.
func Const(value any) Lens {
	return constLens{value: value}
}

func (c constLens) Focus(data any, fn Transform) ([]any, any, error) {
	r, _ := fn(c.value)
	return []any{r}, data, nil
}

func (c constLens) String() string { return fmt.Sprintf("const(%v)", c.value) }

// missing decides what a key lens does when the key is absent.
type missing int

const (
	// missingNil focuses a nil surrogate and inserts the key on write.
	missingNil missing = iota
	// missingFail returns KEY_NOT_FOUND before calling the transform.
	missingFail
	// missingSkip focuses nothing.
	missingSkip
)

type keyLens struct {
	key    string
	policy missing
}

// Key focuses on the value at key. An absent key is focused as nil and
// writing inserts it.
func Key(key string) Lens {
	return keyLens{key: key, policy: missingNil}
}

// KeyStrict focuses on the value at key and fails with KEY_NOT_FOUND when
// the key is absent.
func KeyStrict(key string) Lens {
	return keyLens{key: key, policy: missingFail}
}

// KeyOptional focuses on the value at key, or on nothing when the key is
// absent.
func KeyOptional(key string) Lens {
	return keyLens{key: key, policy: missingSkip}
}

func (k keyLens) Focus(data any, fn Transform) ([]any, any, error) {
	found, err := lookup(k.String(), data, k.key)
	if err != nil {
		return nil, nil, err
	}
	value, ok := found.Get()
	if !ok {
		switch k.policy {
		case missingFail:
			return nil, nil, lenserr.KeyNotFound(k.key)
		case missingSkip:
			return []any{}, data, nil
		}
	}

	r, u := fn(value)
	updated, err := assign(k.String(), data, k.key, u)
	if err != nil {
		return nil, nil, err
	}
	return []any{r}, updated, nil
}

func (k keyLens) String() string {
	switch k.policy {
	case missingFail:
		return fmt.Sprintf("key!(%q)", k.key)
	case missingSkip:
		return fmt.Sprintf("key?(%q)", k.key)
	default:
		return fmt.Sprintf("key(%q)", k.key)
	}
}

// Keys focuses on each key in order, with Key semantics.
func Keys(keys ...string) Lens {
	return keysWith(Key, keys)
}

// KeysStrict focuses on each key in order, with KeyStrict semantics.
func KeysStrict(keys ...string) Lens {
	return keysWith(KeyStrict, keys)
}

// KeysOptional focuses on each present key in order.
func KeysOptional(keys ...string) Lens {
	return keysWith(KeyOptional, keys)
}

func keysWith(ctor func(string) Lens, keys []string) Lens {
	lenses := make([]Lens, len(keys))
	for i, k := range keys {
		lenses[i] = ctor(k)
	}
	return Multiple(lenses...)
}

type atLens struct {
	index int
}

// At focuses on the element at index of a sequence or tuple. An index
// outside [0, len) fails with INDEX_OUT_OF_RANGE.
func At(index int) Lens {
	return atLens{index: index}
}

// Index is an alias of At.
func Index(index int) Lens {
	return At(index)
}

func (a atLens) Focus(data any, fn Transform) ([]any, any, error) {
	items, err := positional(a.String(), data)
	if err != nil {
		return nil, nil, err
	}
	if a.index < 0 || a.index >= len(items) {
		return nil, nil, lenserr.IndexOutOfRange(a.index, len(items))
	}
	r, u := fn(items[a.index])
	return []any{r}, replaceAt(data, items, a.index, u), nil
}

func (a atLens) String() string { return fmt.Sprintf("at(%d)", a.index) }

type indicesLens struct {
	indices []int
}

// Indices focuses on the element at each index, in the given order. Each
// write sees the data already updated by the previous ones.
func Indices(indices ...int) Lens {
	return indicesLens{indices: slices.Clone(indices)}
}

func (l indicesLens) Focus(data any, fn Transform) ([]any, any, error) {
	results := make([]any, 0, len(l.indices))
	for _, i := range l.indices {
		res, updated, err := atLens{index: i}.Focus(data, fn)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, res...)
		data = updated
	}
	return results, data, nil
}

func (l indicesLens) String() string {
	parts := make([]string, len(l.indices))
	for i, idx := range l.indices {
		parts[i] = fmt.Sprint(idx)
	}
	return "indices(" + strings.Join(parts, ", ") + ")"
}

// gap selects where a gapLens inserts.
type gap int

const (
	gapBefore gap = iota
	gapBehind
	gapFront
	gapBack
)

type gapLens struct {
	index int
	kind  gap
}

// Before focuses on the gap just before index. The transform sees nil and its
// replacement is inserted into the sequence there.
func Before(index int) Lens {
	return gapLens{index: index, kind: gapBefore}
}

// Behind focuses on the gap just after index.
func Behind(index int) Lens {
	return gapLens{index: index, kind: gapBehind}
}

// Front focuses on the gap at the start of a sequence.
func Front() Lens {
	return gapLens{kind: gapFront}
}

// Back focuses on the gap at the end of a sequence.
func Back() Lens {
	return gapLens{kind: gapBack}
}

// position clamps the insertion point into [0, n].
func (g gapLens) position(n int) int {
	var pos int
	switch g.kind {
	case gapBefore:
		pos = g.index
	case gapBehind:
		pos = g.index + 1
	case gapFront:
		pos = 0
	case gapBack:
		pos = n
	}
	return max(0, min(pos, n))
}

func (g gapLens) Focus(data any, fn Transform) ([]any, any, error) {
	items, ok := data.([]any)
	if !ok {
		return nil, nil, lenserr.InvalidShape(g.String(), data)
	}
	r, u := fn(nil)
	return []any{r}, slices.Insert(slices.Clone(items), g.position(len(items)), u), nil
}

func (g gapLens) String() string {
	switch g.kind {
	case gapBefore:
		return fmt.Sprintf("before(%d)", g.index)
	case gapBehind:
		return fmt.Sprintf("behind(%d)", g.index)
	case gapFront:
		return "front"
	default:
		return "back"
	}
}
