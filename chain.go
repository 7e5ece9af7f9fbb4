package lens

// Chain is the pipe form of every constructor. Each method extends the chain
// by sequencing the constructed lens after it, so
//
//	Pipe(Key("items")).All().Key("value")
//
// is Seq(Seq(Key("items"), All()), Key("value")). A zero Chain is Root.
type Chain struct {
	lens Lens
}

// Pipe starts a chain sequencing the given lenses.
func Pipe(lenses ...Lens) Chain {
	var c Chain
	for _, l := range lenses {
		c = c.Then(l)
	}
	return c
}

// Extend sequences the lens built by ctor from arg after prev.
func Extend[A any](prev Lens, ctor func(A) Lens, arg A) Lens {
	return Seq(prev, ctor(arg))
}

// Then sequences next after the chain.
func (c Chain) Then(next Lens) Chain {
	if c.lens == nil {
		return Chain{lens: next}
	}
	return Chain{lens: Seq(c.lens, next)}
}

// Lens returns the lens the chain describes.
func (c Chain) Lens() Lens {
	if c.lens == nil {
		return Root()
	}
	return c.lens
}

// Focus implements Lens.
func (c Chain) Focus(data any, fn Transform) ([]any, any, error) {
	return c.Lens().Focus(data, fn)
}

func (c Chain) String() string {
	return lensName(c.Lens())
}

func (c Chain) Empty() Chain                 { return c.Then(Empty()) }
func (c Chain) Root() Chain                  { return c.Then(Root()) }
func (c Chain) Const(value any) Chain        { return c.Then(Const(value)) }
func (c Chain) Key(key string) Chain         { return c.Then(Key(key)) }
func (c Chain) KeyStrict(key string) Chain   { return c.Then(KeyStrict(key)) }
func (c Chain) KeyOptional(key string) Chain { return c.Then(KeyOptional(key)) }
func (c Chain) Keys(keys ...string) Chain    { return c.Then(Keys(keys...)) }
func (c Chain) KeysStrict(keys ...string) Chain {
	return c.Then(KeysStrict(keys...))
}
func (c Chain) KeysOptional(keys ...string) Chain {
	return c.Then(KeysOptional(keys...))
}
func (c Chain) At(index int) Chain               { return c.Then(At(index)) }
func (c Chain) Index(index int) Chain            { return c.Then(Index(index)) }
func (c Chain) Indices(indices ...int) Chain     { return c.Then(Indices(indices...)) }
func (c Chain) Before(index int) Chain           { return c.Then(Before(index)) }
func (c Chain) Behind(index int) Chain           { return c.Then(Behind(index)) }
func (c Chain) Front() Chain                     { return c.Then(Front()) }
func (c Chain) Back() Chain                      { return c.Then(Back()) }
func (c Chain) All() Chain                       { return c.Then(All()) }
func (c Chain) MapValues() Chain                 { return c.Then(MapValues()) }
func (c Chain) MapKeys() Chain                   { return c.Then(MapKeys()) }
func (c Chain) Filter(pred func(any) bool) Chain { return c.Then(Filter(pred)) }
func (c Chain) Reject(pred func(any) bool) Chain { return c.Then(Reject(pred)) }
func (c Chain) Seq(outer, inner Lens) Chain      { return c.Then(Seq(outer, inner)) }
func (c Chain) Both(first, second Lens) Chain    { return c.Then(Both(first, second)) }
func (c Chain) SeqBoth(outer, inner Lens) Chain {
	return c.Then(SeqBoth(outer, inner))
}
func (c Chain) Multiple(lenses ...Lens) Chain { return c.Then(Multiple(lenses...)) }
func (c Chain) Either(primary, fallback Lens) Chain {
	return c.Then(Either(primary, fallback))
}
func (c Chain) Context(context, item Lens) Chain {
	return c.Then(Context(context, item))
}
func (c Chain) Into(l Lens, target any) Chain { return c.Then(Into(l, target)) }
func (c Chain) Match(selector func(any) Lens) Chain {
	return c.Then(Match(selector))
}
func (c Chain) Recur(l Lens) Chain     { return c.Then(Recur(l)) }
func (c Chain) RecurRoot(l Lens) Chain { return c.Then(RecurRoot(l)) }
