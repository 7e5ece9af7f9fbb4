package config

import (
	"maps"
	"slices"

	"github.com/obrok/lens"
)

// merge lays over on top of base. Where both hold an object at the same key
// the objects are merged recursively; otherwise over's value wins.
func merge(base, over any) (any, error) {
	if lens.ShapeOf(base) != lens.ShapeAssoc || lens.ShapeOf(over) != lens.ShapeAssoc {
		return over, nil
	}
	entries, err := lens.ToList(lens.All(), over)
	if err != nil {
		return nil, err
	}
	out := base
	for _, e := range entries {
		entry := e.(lens.Tuple)
		var failed error
		out, err = lens.Map(lens.Key(entry[0].(string)), out, func(current any) any {
			merged, err := merge(current, entry[1])
			if err != nil {
				failed = err
				return current
			}
			return merged
		})
		if err != nil {
			return nil, err
		}
		if failed != nil {
			return nil, failed
		}
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
