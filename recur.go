package lens

import "fmt"

type recurLens struct {
	lens Lens
}

// Recur focuses on everything reachable by applying l repeatedly: the foci of
// l, their foci under l, and so on. A node is reported after all of its
// descendants, and the value written back at each node is the node with its
// descendants already updated and then passed through the transform.
// The root itself is not a focus; see RecurRoot.
//
// Recur does not detect cycles; data must be finite and tree shaped.
func Recur(l Lens) Lens {
	return recurLens{lens: l}
}

func (r recurLens) Focus(data any, fn Transform) ([]any, any, error) {
	return nest(r.lens, data, func(node any) ([]any, any, error) {
		below, changed, err := r.Focus(node, fn)
		if err != nil {
			return nil, nil, err
		}
		own, replaced := fn(changed)
		return append(below, own), replaced, nil
	})
}

func (r recurLens) String() string {
	return fmt.Sprintf("recur(%s)", lensName(r.lens))
}

// RecurRoot is Recur(l) followed by the whole data as the last focus.
func RecurRoot(l Lens) Lens {
	return Both(Recur(l), Root())
}
