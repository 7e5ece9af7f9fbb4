package config

import (
	"strconv"
	"strings"

	"github.com/obrok/lens"
)

// Wildcard is the path segment that matches every element.
const Wildcard = "*"

// Segments splits a dotted key. An empty key has no segments.
func Segments(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, ".")
}

// ReadPath turns a dotted key into a lens that reads it. "*" focuses every
// value of an object or element of a list, an integer segment an index,
// anything else a key. ReadPath lenses
// never fail: a segment that does not fit the data focuses nothing.
func ReadPath(key string) lens.Lens {
	chain := lens.Pipe()
	for _, seg := range Segments(key) {
		chain = chain.Then(readSegment(seg))
	}
	return chain
}

// WritePath turns a dotted key into a lens for writing. Missing objects along
// the way are created; a segment that does not fit the data is an error.
func WritePath(key string) lens.Lens {
	chain := lens.Pipe()
	for _, seg := range Segments(key) {
		chain = chain.Then(writeSegment(seg))
	}
	return chain
}

func readSegment(seg string) lens.Lens {
	if seg == Wildcard {
		return lens.Match(func(data any) lens.Lens {
			switch lens.ShapeOf(data) {
			case lens.ShapeScalar:
				return lens.Empty()
			case lens.ShapeAssoc:
				return lens.MapValues()
			default:
				return lens.All()
			}
		})
	}
	if i, err := strconv.Atoi(seg); err == nil {
		return lens.Match(func(data any) lens.Lens {
			items, ok := positional(data)
			if !ok || i < 0 || i >= len(items) {
				return lens.Empty()
			}
			return lens.At(i)
		})
	}
	return lens.Match(func(data any) lens.Lens {
		if lens.ShapeOf(data) != lens.ShapeAssoc {
			return lens.Empty()
		}
		return lens.KeyOptional(seg)
	})
}

func writeSegment(seg string) lens.Lens {
	if seg == Wildcard {
		return lens.Match(func(data any) lens.Lens {
			if lens.ShapeOf(data) == lens.ShapeAssoc {
				return lens.MapValues()
			}
			return lens.All()
		})
	}
	if i, err := strconv.Atoi(seg); err == nil {
		return lens.At(i)
	}
	key := lens.Key(seg)
	return lens.Func(func(data any, fn lens.Transform) ([]any, any, error) {
		if data == nil {
			data = lens.NewObject()
		}
		return key.Focus(data, fn)
	})
}

func positional(data any) ([]any, bool) {
	switch v := data.(type) {
	case []any:
		return v, true
	case lens.Tuple:
		return v, true
	}
	return nil, false
}
