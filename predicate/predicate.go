// Package predicate compiles CEL expressions into predicates for lens filters.
// An expression sees the focused value as the variable it:
//
//	p, err := predicate.Compile(`it.age >= 18 && "admin" in it.roles`)
//	adults := lens.Filtered(lens.All(), p.Match)
package predicate

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/obrok/lens"
	lenserr "github.com/obrok/lens/errors"
)

// Var is the name under which an expression sees the focused value.
const Var = "it"

var env = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(cel.Variable(Var, cel.DynType))
})

// Predicate is a compiled boolean CEL expression. It is safe for concurrent
// use.
type Predicate struct {
	expr    string
	program cel.Program
}

// Compile parses and checks expr. The expression must yield a bool.
func Compile(expr string) (*Predicate, error) {
	e, err := env()
	if err != nil {
		return nil, err
	}
	ast, iss := e.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, lenserr.InvalidArgument(fmt.Sprintf("compiling %q", expr)).WithCause(iss.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, lenserr.InvalidArgument(fmt.Sprintf("%q yields %s, not bool", expr, out))
	}
	prg, err := e.Program(ast)
	if err != nil {
		return nil, lenserr.InvalidArgument(fmt.Sprintf("generating program for %q", expr)).WithCause(err)
	}
	return &Predicate{expr: expr, program: prg}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(expr string) *Predicate {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Eval runs the expression against v. Objects, tuples and sets are passed to
// CEL as plain maps and lists.
func (p *Predicate) Eval(v any) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{Var: lens.Plain(v)})
	if err != nil {
		return false, fmt.Errorf("evaluating %q: %w", p.expr, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("evaluating %q: result %v is %T, not bool", p.expr, out.Value(), out.Value())
	}
	return b, nil
}

// Match reports whether the expression holds for v. Evaluation errors count
// as false, so a filter skips values the expression cannot handle.
func (p *Predicate) Match(v any) bool {
	ok, err := p.Eval(v)
	return err == nil && ok
}

// Filter returns a lens focusing on the data when the expression holds.
func (p *Predicate) Filter() lens.Lens {
	return lens.Filter(p.Match)
}

// Reject returns a lens focusing on the data when the expression does not
// hold.
func (p *Predicate) Reject() lens.Lens {
	return lens.Filter(func(v any) bool {
		ok, err := p.Eval(v)
		return err == nil && !ok
	})
}

func (p *Predicate) String() string {
	return p.expr
}
