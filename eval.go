package lens

import lenserr "github.com/obrok/lens/errors"

// ToList returns every value l focuses on in data.
func ToList(l Lens, data any) ([]any, error) {
	res, _, err := l.Focus(data, identity)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []any{}
	}
	return res, nil
}

// Map returns data with every focus replaced by f(focus).
func Map(l Lens, data any, f func(any) any) (any, error) {
	_, updated, err := l.Focus(data, func(focus any) (any, any) {
		return nil, f(focus)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetAndMap runs f on every focus, collecting its first output and writing
// back its second.
func GetAndMap(l Lens, data any, f Transform) ([]any, any, error) {
	res, updated, err := l.Focus(data, f)
	if err != nil {
		return nil, nil, err
	}
	if res == nil {
		res = []any{}
	}
	return res, updated, nil
}

// Each calls f on every focused value in result order.
func Each(l Lens, data any, f func(any)) error {
	values, err := ToList(l, data)
	if err != nil {
		return err
	}
	for _, v := range values {
		f(v)
	}
	return nil
}

// Put replaces every focus with value.
func Put(l Lens, data any, value any) (any, error) {
	return Map(l, data, func(any) any { return value })
}

// One returns the single value l focuses on, or ARITY_MISMATCH when there is
// not exactly one.
func One(l Lens, data any) (any, error) {
	values, err := ToList(l, data)
	if err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, lenserr.ArityMismatch(1, len(values))
	}
	return values[0], nil
}
