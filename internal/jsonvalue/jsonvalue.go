// Package jsonvalue infers dlite's typed-value representation (spec.md §3)
// from an arbitrary decoded JSON value, and converts it back. It underlies
// the JSON reference storage backend (internal/storage/jsonbackend), which
// stores every property as plain JSON.
package jsonvalue

import (
	"encoding/json"
	"strings"

	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/types"
)

// Kind is the single-character element classification of a decoded JSON
// node, per spec.md §4.G.
type Kind byte

const (
	KindUndefined Kind = 'x'
	KindObject    Kind = 'o'
	KindArray     Kind = 'a'
	KindInt       Kind = 'i'
	KindReal      Kind = 'r'
	KindString    Kind = 's'
	KindBool      Kind = 'b'
	KindNull      Kind = 'n'
	KindMixed     Kind = 'm'
)

// DefaultNdimMax bounds the rank of tensors this package will infer a shape
// for, overridable by callers via the ndimMax parameter of Shape/Infer.
const DefaultNdimMax = 8

// KindOf classifies a decoded JSON node, as produced by a decoder
// configured with UseNumber() (internal/storage/jsonbackend decodes every
// property value this way): object, array, integer, real, string, bool or
// null. Classifying a json.Number by its literal digits rather than by
// round-tripping it through float64 keeps integers beyond 2^53 exact —
// a plain float64(int64(v)) == v check would silently lose precision on
// those. A bare float64 is still accepted for callers (e.g. tests) that
// decode without UseNumber.
func KindOf(node any) Kind {
	switch v := node.(type) {
	case nil:
		return KindNull
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case string:
		return KindString
	case bool:
		return KindBool
	case json.Number:
		if isIntegerLiteral(string(v)) {
			return KindInt
		}
		return KindReal
	case float64:
		if v == float64(int64(v)) {
			return KindInt
		}
		return KindReal
	default:
		return KindUndefined
	}
}

// isIntegerLiteral reports whether a JSON number's literal text denotes an
// integer: no fraction and no exponent, matching encoding/json's own
// grammar for when a number is written in integer form.
func isIntegerLiteral(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

// Merge combines the types of two sibling array elements: x is the bottom
// element, i ⊔ r = r, same ⊔ same = same, anything else is mixed.
func Merge(t1, t2 Kind) Kind {
	switch {
	case t1 == KindUndefined:
		return t2
	case t2 == KindUndefined:
		return t1
	case t1 == t2:
		return t2
	case t1 == KindInt && t2 == KindReal:
		return KindReal
	case t1 == KindReal && t2 == KindInt:
		return KindReal
	default:
		return KindMixed
	}
}

// ArrayElementKind recursively merges the kind of every leaf in a JSON
// array's tree, descending into nested arrays, stopping early on mixed.
func ArrayElementKind(node any) Kind {
	arr, ok := node.([]any)
	if !ok {
		return KindUndefined
	}
	kind := KindUndefined
	for _, item := range arr {
		var itemKind Kind
		if _, isArr := item.([]any); isArr {
			itemKind = ArrayElementKind(item)
		} else {
			itemKind = KindOf(item)
		}
		kind = Merge(kind, itemKind)
		if kind == KindMixed {
			break
		}
	}
	return kind
}

// Shape infers the rectangular dimensions of a JSON value: nil for a
// scalar, a slice of sizes for an array nested to some rank. It reports an
// error if the array is non-rectangular or its rank exceeds ndimMax.
func Shape(node any, ndimMax int) ([]int, error) {
	dims := make([]int, ndimMax+1)
	for i := range dims {
		dims[i] = -2 // unset sentinel
	}
	arraySize(node, 0, dims, ndimMax+1)
	if dims[ndimMax] != -2 {
		return nil, errors.WrapWithCode(errors.New("rank exceeds ndimMax"), errors.ErrShapeMismatch,
			"json array nested deeper than %d", ndimMax)
	}

	rank := 0
	for i := 0; i < ndimMax; i++ {
		switch dims[i] {
		case -2:
			i = ndimMax // break outer
		case -1:
			return nil, errors.WrapWithCode(errors.New("ragged array"), errors.ErrShapeMismatch, "non-rectangular json array")
		default:
			rank++
			continue
		}
		break
	}
	if rank == 0 {
		return nil, nil
	}
	return dims[:rank], nil
}

func arraySize(node any, depth int, dims []int, ndimMax int) {
	if depth >= ndimMax {
		return
	}
	arr, ok := node.([]any)
	if !ok {
		return
	}
	dims[depth] = mergeSize(dims[depth], len(arr))
	for _, item := range arr {
		arraySize(item, depth+1, dims, ndimMax)
	}
}

func mergeSize(s1, s2 int) int {
	if s1 == -2 {
		return s2
	}
	if s1 == s2 {
		return s2
	}
	return -1
}

// Value is a shape-tagged, flattened decoded JSON value: Kind is the
// element kind every leaf coerces to, Dims is nil for a scalar, and Flat
// holds len(leaves) elements in depth-first left-to-right order.
type Value struct {
	Kind Kind
	Dims []int
	Flat []any
}

// Infer classifies, shape-checks and flattens an arbitrary decoded JSON
// node into a Value, per spec.md §4.G. A mixed element kind or a
// non-rectangular/over-rank array is reported as an error.
func Infer(node any, ndimMax int) (*Value, error) {
	if _, isArr := node.([]any); !isArr {
		kind := KindOf(node)
		return &Value{Kind: kind, Dims: nil, Flat: []any{coerce(node, kind)}}, nil
	}

	elemKind := ArrayElementKind(node)
	if elemKind == KindMixed {
		return nil, errors.WrapWithCode(errors.New("mixed array element types"), errors.ErrTypeMismatch, "jsonvalue.Infer")
	}

	dims, err := Shape(node, ndimMax)
	if err != nil {
		return nil, err
	}
	if len(dims) > ndimMax {
		return nil, errors.WrapWithCode(errors.New("rank exceeds ndimMax"), errors.ErrShapeMismatch, "jsonvalue.Infer")
	}

	flat := flatten(node, elemKind)
	return &Value{Kind: elemKind, Dims: dims, Flat: flat}, nil
}

// flatten performs a depth-first, left-to-right traversal, coercing each
// leaf to elemKind's natural representation (bool -> int, int -> real, only
// when the inferred kind demands it).
func flatten(node any, elemKind Kind) []any {
	arr, ok := node.([]any)
	if !ok {
		return []any{coerce(node, elemKind)}
	}
	var out []any
	for _, item := range arr {
		out = append(out, flatten(item, elemKind)...)
	}
	return out
}

func coerce(leaf any, elemKind Kind) any {
	switch elemKind {
	case KindReal:
		switch v := leaf.(type) {
		case json.Number:
			f, _ := v.Float64()
			return f
		case float64:
			return v
		case bool:
			if v {
				return 1.0
			}
			return 0.0
		}
	case KindInt:
		switch v := leaf.(type) {
		case bool:
			if v {
				return int64(1)
			}
			return int64(0)
		case json.Number:
			// Int64() parses the literal digits directly, so an integer
			// beyond 2^53 (float64's exact-integer range) still round-trips
			// exactly instead of going through a lossy float64 cast.
			i, err := v.Int64()
			if err != nil {
				f, _ := v.Float64()
				return int64(f)
			}
			return i
		case float64:
			return int64(v)
		}
	}
	return leaf
}

// KindToTypesKind maps an inferred jsonvalue.Kind to the instance-layer
// types.Kind used to store it (spec.md §3's typed-value vocabulary).
func KindToTypesKind(k Kind) (types.Kind, bool) {
	switch k {
	case KindInt:
		return types.Int, true
	case KindReal:
		return types.Float, true
	case KindString:
		return types.StringPtr, true
	case KindBool:
		return types.Bool, true
	default:
		return 0, false
	}
}

// ToJSON materialises v back into a decoded JSON node: the scalar itself
// for a Dims == nil value, or a nested []any otherwise.
func ToJSON(v *Value) any {
	if len(v.Dims) == 0 {
		if len(v.Flat) == 0 {
			return nil
		}
		return v.Flat[0]
	}
	next := 0
	return nestJSON(v.Dims, v.Flat, &next)
}

func nestJSON(dims []int, flat []any, next *int) any {
	if len(dims) == 0 {
		v := flat[*next]
		*next++
		return v
	}
	out := make([]any, dims[0])
	for i := range out {
		out[i] = nestJSON(dims[1:], flat, next)
	}
	return out
}
