package jsonvalue

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode mirrors internal/storage/jsonbackend's decoder configuration
// (UseNumber) rather than plain json.Unmarshal, so these tests exercise
// KindOf/Infer against the same json.Number leaves the JSON backend
// actually hands them.
func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNull, KindOf(nil))
	assert.Equal(t, KindBool, KindOf(true))
	assert.Equal(t, KindInt, KindOf(decode(t, "3")))
	assert.Equal(t, KindReal, KindOf(decode(t, "3.5")))
	assert.Equal(t, KindString, KindOf("x"))
	assert.Equal(t, KindArray, KindOf(decode(t, "[1,2]")))
	assert.Equal(t, KindObject, KindOf(decode(t, `{"a":1}`)))
}

func TestMerge(t *testing.T) {
	assert.Equal(t, KindInt, Merge(KindUndefined, KindInt))
	assert.Equal(t, KindReal, Merge(KindInt, KindReal))
	assert.Equal(t, KindReal, Merge(KindReal, KindInt))
	assert.Equal(t, KindString, Merge(KindString, KindString))
	assert.Equal(t, KindMixed, Merge(KindString, KindInt))
}

func TestShapeRectangular(t *testing.T) {
	v := decode(t, "[[1,2,3],[4,5,6]]")
	dims, err := Shape(v, DefaultNdimMax)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, dims)
}

func TestShapeNonRectangular(t *testing.T) {
	v := decode(t, "[[1,2],[3]]")
	_, err := Shape(v, DefaultNdimMax)
	assert.Error(t, err)
}

func TestInferScalar(t *testing.T) {
	val, err := Infer(decode(t, "3.5"), DefaultNdimMax)
	require.NoError(t, err)
	assert.Nil(t, val.Dims)
	assert.Equal(t, KindReal, val.Kind)
	assert.Equal(t, []any{3.5}, val.Flat)
}

func TestInferMatrixOfInts(t *testing.T) {
	val, err := Infer(decode(t, "[[1,2,3],[4,5,6]]"), DefaultNdimMax)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, val.Dims)
	assert.Equal(t, KindInt, val.Kind)
	assert.Len(t, val.Flat, 6)
}

func TestInferMixedIntReal(t *testing.T) {
	val, err := Infer(decode(t, "[1, 2.5, 3]"), DefaultNdimMax)
	require.NoError(t, err)
	assert.Equal(t, KindReal, val.Kind)
	assert.Equal(t, []any{1.0, 2.5, 3.0}, val.Flat)
}

func TestInferMixedTypesErrors(t *testing.T) {
	_, err := Infer(decode(t, `[1, "a"]`), DefaultNdimMax)
	assert.Error(t, err)
}

func TestInferBoolArrayStaysBool(t *testing.T) {
	val, err := Infer(decode(t, "[true, false, true]"), DefaultNdimMax)
	require.NoError(t, err)
	assert.Equal(t, KindBool, val.Kind)
}

func TestToJSONRoundTrip(t *testing.T) {
	original := decode(t, "[[1,2,3],[4,5,6]]")
	val, err := Infer(original, DefaultNdimMax)
	require.NoError(t, err)

	back := ToJSON(val)
	reencoded, err := json.Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, "[[1,2,3],[4,5,6]]", string(reencoded))
}

func TestToJSONScalar(t *testing.T) {
	val, err := Infer(decode(t, `"hello"`), DefaultNdimMax)
	require.NoError(t, err)
	assert.Equal(t, "hello", ToJSON(val))
}

// TestInferLargeIntegerStaysExact exercises a json.Number literal beyond
// float64's 2^53 exact-integer range: a naive float64(int64(v)) == v
// classification round-trips the value through float64 and silently loses
// the low digit, while parsing the literal's text keeps it exact.
func TestInferLargeIntegerStaysExact(t *testing.T) {
	const literal = "9007199254740993" // 2^53 + 1, not exactly representable as float64

	assert.Equal(t, KindInt, KindOf(decode(t, literal)))

	val, err := Infer(decode(t, literal), DefaultNdimMax)
	require.NoError(t, err)
	assert.Equal(t, KindInt, val.Kind)
	require.Len(t, val.Flat, 1)
	assert.Equal(t, int64(9007199254740993), val.Flat[0])
}

func TestKindToTypesKind(t *testing.T) {
	k, ok := KindToTypesKind(KindReal)
	require.True(t, ok)
	assert.Equal(t, "float", k.String())

	_, ok = KindToTypesKind(KindObject)
	assert.False(t, ok)
}
