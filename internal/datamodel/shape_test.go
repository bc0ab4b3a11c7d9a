package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenNestedRowMajor(t *testing.T) {
	nested := []any{
		[]any{1.0, 2.0, 3.0},
		[]any{4.0, 5.0, 6.0},
	}
	var flat []float64
	FlattenNested(nested, []int{2, 3}, func(i int, leaf any) {
		flat = append(flat, leaf.(float64))
	})
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, flat)
}

func TestFlattenNestedScalar(t *testing.T) {
	var got any
	FlattenNested(42.0, nil, func(i int, leaf any) { got = leaf })
	assert.Equal(t, 42.0, got)
}

func TestNestFlatRoundTrip(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6}
	nested := NestFlat([]int{2, 3}, func(i int) any { return flat[i] })

	var out []float64
	FlattenNested(nested, []int{2, 3}, func(i int, leaf any) {
		out = append(out, leaf.(float64))
	})
	assert.Equal(t, flat, out)
}
