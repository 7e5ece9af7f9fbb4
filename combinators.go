package lens

import (
	"fmt"

	lenserr "github.com/obrok/lens/errors"
	"github.com/obrok/lens/functional"
)

type seqLens struct {
	outer, inner Lens
}

// Seq runs inner on every focus of outer. Results come out in outer's order
// with each focus's inner results in place, and inner's updated values are
// written back through outer. Seq is associative.
func Seq(outer, inner Lens) Lens {
	return seqLens{outer: outer, inner: inner}
}

func (s seqLens) Focus(data any, fn Transform) ([]any, any, error) {
	return nest(s.outer, data, func(focus any) ([]any, any, error) {
		return s.inner.Focus(focus, fn)
	})
}

func (s seqLens) String() string {
	return lensName(s.outer) + " |> " + lensName(s.inner)
}

type bothLens struct {
	first, second Lens
}

// Both runs first over data and then second over the data first returned.
// Results are first's followed by second's. second sees first's writes, so it
// must still be able to find its targets after them.
func Both(first, second Lens) Lens {
	return bothLens{first: first, second: second}
}

func (b bothLens) Focus(data any, fn Transform) ([]any, any, error) {
	res1, data1, err := b.first.Focus(data, fn)
	if err != nil {
		return nil, nil, err
	}
	res2, data2, err := b.second.Focus(data1, fn)
	if err != nil {
		return nil, nil, err
	}
	results := make([]any, 0, len(res1)+len(res2))
	results = append(results, res1...)
	return append(results, res2...), data2, nil
}

func (b bothLens) String() string {
	return fmt.Sprintf("both(%s, %s)", lensName(b.first), lensName(b.second))
}

// SeqBoth focuses on Seq(outer, inner) and then on outer itself, which sees
// the values already updated by inner.
func SeqBoth(outer, inner Lens) Lens {
	return Both(Seq(outer, inner), outer)
}

// Multiple focuses on every lens in order, folding them with Both from the
// right. With no lenses it behaves as Empty.
func Multiple(lenses ...Lens) Lens {
	if len(lenses) == 0 {
		return Empty()
	}
	acc := lenses[len(lenses)-1]
	for i := len(lenses) - 2; i >= 0; i-- {
		acc = Both(lenses[i], acc)
	}
	return acc
}

type eitherLens struct {
	primary, fallback Lens
}

// Either uses primary, or fallback on the original data when primary has no
// foci. Results of the two are never merged.
func Either(primary, fallback Lens) Lens {
	return eitherLens{primary: primary, fallback: fallback}
}

func (e eitherLens) Focus(data any, fn Transform) ([]any, any, error) {
	res, updated, err := e.primary.Focus(data, fn)
	if err != nil {
		return nil, nil, err
	}
	if len(res) > 0 {
		return res, updated, nil
	}
	return e.fallback.Focus(data, fn)
}

func (e eitherLens) String() string {
	return fmt.Sprintf("either(%s, %s)", lensName(e.primary), lensName(e.fallback))
}

type contextLens struct {
	context, item Lens
}

// Context is Seq(context, item) where the transform receives a
// functional.Pair[any, any] of the context focus and the item focus. The
// replacement it returns is written to the item only.
func Context(context, item Lens) Lens {
	return contextLens{context: context, item: item}
}

func (c contextLens) Focus(data any, fn Transform) ([]any, any, error) {
	return nest(c.context, data, func(ctx any) ([]any, any, error) {
		return c.item.Focus(ctx, func(item any) (any, any) {
			return fn(functional.NewPair(ctx, item))
		})
	})
}

func (c contextLens) String() string {
	return fmt.Sprintf("context(%s, %s)", lensName(c.context), lensName(c.item))
}

type matchLens struct {
	selector func(any) Lens
}

// Match asks selector for a lens based on the current data and delegates to
// it. A nil lens from selector is an INVALID_ARGUMENT error.
func Match(selector func(data any) Lens) Lens {
	return matchLens{selector: selector}
}

func (m matchLens) Focus(data any, fn Transform) ([]any, any, error) {
	l := m.selector(data)
	if l == nil {
		return nil, nil, lenserr.InvalidArgument("match selector returned no lens").
			WithDetail("type", fmt.Sprintf("%T", data))
	}
	return l.Focus(data, fn)
}

func (matchLens) String() string { return "match" }
