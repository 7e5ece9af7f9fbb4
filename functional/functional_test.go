package functional

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestOptionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("Some(v).Get() == (v, true)", prop.ForAll(
		func(v int) bool {
			got, ok := Some(v).Get()
			return ok && got == v
		},
		gen.Int(),
	))

	properties.Property("None.Get() reports absence", prop.ForAll(
		func(_ int) bool {
			got, ok := None[int]().Get()
			return !ok && got == 0
		},
		gen.Int(),
	))

	properties.Property("Unpack returns the constructor arguments", prop.ForAll(
		func(a string, b int) bool {
			x, y := NewPair(a, b).Unpack()
			return x == a && y == b
		},
		gen.AlphaString(),
		gen.Int(),
	))

	properties.TestingRun(t)
}

func TestOptionGet(t *testing.T) {
	v, ok := Some("x").Get()
	if !ok || v != "x" {
		t.Errorf("expected (x, true), got (%v, %v)", v, ok)
	}
	if _, ok := None[string]().Get(); ok {
		t.Error("None should not be present")
	}
	var zero Option[string]
	if _, ok := zero.Get(); ok {
		t.Error("the zero Option should be None")
	}
}
