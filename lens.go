package lens

// Transform is called once per focus. It returns the value to collect and
// the value to write back in place of the focus.
type Transform func(focus any) (result, replacement any)

// Lens is the focus protocol every primitive and combinator implements.
// Focus visits every location the lens describes in data, calling fn on each,
// and returns the collected results with the updated copy of data.
type Lens interface {
	Focus(data any, fn Transform) ([]any, any, error)
}

// Func adapts a plain function to the Lens interface.
type Func func(data any, fn Transform) ([]any, any, error)

// Focus calls f.
func (f Func) Focus(data any, fn Transform) ([]any, any, error) {
	return f(data, fn)
}

// String names anonymous lenses in logs.
func (f Func) String() string {
	return "func"
}

func identity(focus any) (any, any) {
	return focus, focus
}

// nest runs l over data and hands every focus to visit, which may itself
// fail. Results returned by visit are concatenated in focus order. After the
// first failure visit is not called again and the failure is returned.
func nest(l Lens, data any, visit func(focus any) ([]any, any, error)) ([]any, any, error) {
	var failed error
	res, updated, err := l.Focus(data, func(focus any) (any, any) {
		if failed != nil {
			return nil, focus
		}
		r, u, err := visit(focus)
		if err != nil {
			failed = err
			return nil, focus
		}
		return r, u
	})
	if err != nil {
		return nil, nil, err
	}
	if failed != nil {
		return nil, nil, failed
	}

	out := make([]any, 0, len(res))
	for _, r := range res {
		if batch, ok := r.([]any); ok {
			out = append(out, batch...)
		}
	}
	return out, updated, nil
}

func lensName(l Lens) string {
	if s, ok := l.(interface{ String() string }); ok {
		return s.String()
	}
	return "lens"
}
