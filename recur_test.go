package lens_test

import (
	"testing"

	"github.com/obrok/lens"
	lenserr "github.com/obrok/lens/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var children = lens.Seq(lens.Key("items"), lens.All())

func TestRecurWritesBack(t *testing.T) {
	res, updated, err := lens.GetAndMap(lens.Seq(lens.Recur(children), lens.Key("v")), tree(), func(v any) (any, any) {
		return v, v.(int) * 10
	})
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4, 3}, res)

	values, err := lens.ToList(lens.Multiple(
		lens.Key("v"),
		lens.Pipe(children).Key("v").Lens(),
		lens.Pipe(children).At(1).Key("items").All().Key("v").Lens(),
	), updated)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 20, 30, 40}, values)
}

func TestRecurSeesUpdatedDescendants(t *testing.T) {
	var complete []bool
	_, err := lens.Map(lens.Recur(children), tree(), func(v any) any {
		node := v.(map[string]any)
		done := true
		for _, child := range node["items"].([]any) {
			if _, ok := child.(map[string]any)["seen"]; !ok {
				done = false
			}
		}
		complete = append(complete, done)

		out := make(map[string]any, len(node)+1)
		for k, val := range node {
			out[k] = val
		}
		out["seen"] = true
		return out
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, complete)
}

func TestRecurRoot(t *testing.T) {
	var order []any
	err := lens.Each(lens.Seq(lens.RecurRoot(children), lens.Key("v")), tree(), func(v any) {
		order = append(order, v)
	})
	require.NoError(t, err)
	assert.Equal(t, []any{2, 4, 3, 1}, order)
}

func TestRecurStopsAtLeaves(t *testing.T) {
	data := map[string]any{"items": []any{
		map[string]any{"v": 1},
		"scalar",
		map[string]any{"items": []any{map[string]any{"v": 2}}},
	}}
	got, err := lens.ToList(lens.Recur(lens.Seq(lens.KeyOptional("items"), lens.All())), data)
	require.ErrorIs(t, err, lenserr.ErrInvalidShape, "a scalar child cannot be looked into")
	assert.Nil(t, got)

	safe := lens.Recur(lens.Match(func(node any) lens.Lens {
		if lens.ShapeOf(node) != lens.ShapeAssoc {
			return lens.Empty()
		}
		return lens.Seq(lens.KeyOptional("items"), lens.All())
	}))
	got, err = lens.ToList(safe, data)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, "scalar", got[1])
}

func TestRecurPropagatesErrors(t *testing.T) {
	data := map[string]any{"items": []any{map[string]any{"v": 1}}}
	_, err := lens.ToList(lens.Recur(lens.Seq(lens.KeyStrict("items"), lens.All())), data)
	require.ErrorIs(t, err, lenserr.ErrKeyNotFound)
}
