package jsonbackend

import (
	"encoding/base64"

	"github.com/sintef/dlite-go/internal/datamodel"
	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/instance"
	"github.com/sintef/dlite-go/internal/jsonvalue"
	"github.com/sintef/dlite-go/internal/types"
)

// encodeFlatBytes converts an inferred JSON value's flat leaves to kind's
// native Go representation and packs them into the raw byte contract
// datamodel.Handle.GetProperty promises.
func encodeFlatBytes(kind types.Kind, elementSize, nmemb int, val *jsonvalue.Value) ([]byte, error) {
	slice, err := buildTypedSlice(kind, val.Flat)
	if err != nil {
		return nil, err
	}
	return instance.EncodeFlat(kind, elementSize, nmemb, slice)
}

// flatToGo converts an inferred stringPtr JSON value into the []string
// shape datamodel.EncodeStringPtr expects.
func flatToGo(val *jsonvalue.Value, kind types.Kind) any {
	out := make([]string, len(val.Flat))
	for i, leaf := range val.Flat {
		s, _ := convertLeaf(leaf, types.String)
		out[i], _ = s.(string)
	}
	return out
}

// decodeFlatToNode unpacks raw (the bytes a datamodel.Handle.SetProperty
// caller provides) into a decoded-JSON-compatible node of the given shape.
func decodeFlatToNode(kind types.Kind, elementSize int, dims []int, raw []byte) (any, error) {
	flat, err := instance.DecodeFlat(kind, elementSize, raw)
	if err != nil {
		return nil, err
	}
	leaves := toAnySlice(flat)
	if len(dims) == 0 {
		if len(leaves) != 1 {
			return nil, errors.WrapWithCode(errors.New("length mismatch"), errors.ErrShapeMismatch, "jsonbackend: scalar property")
		}
		return leaves[0], nil
	}
	return datamodel.NestFlat(dims, func(i int) any { return leaves[i] }), nil
}

// stringsToNode converts the []string or string decoded from a stringPtr
// wire value into a decoded-JSON-compatible node of the given shape.
func stringsToNode(v any, dims []int) any {
	switch s := v.(type) {
	case string:
		return s
	case []string:
		if len(dims) == 0 {
			if len(s) == 0 {
				return nil
			}
			return s[0]
		}
		leaves := make([]any, len(s))
		for i, x := range s {
			leaves[i] = x
		}
		return datamodel.NestFlat(dims, func(i int) any { return leaves[i] })
	default:
		return v
	}
}

// buildTypedSlice converts a flat slice of generic decoded-JSON leaves
// into the concrete Go slice kind's EncodeFlat expects.
func buildTypedSlice(kind types.Kind, flat []any) (any, error) {
	switch kind {
	case types.Bool:
		out := make([]bool, len(flat))
		for i, leaf := range flat {
			v, err := convertLeaf(leaf, kind)
			if err != nil {
				return nil, err
			}
			out[i] = v.(bool)
		}
		return out, nil
	case types.Int:
		out := make([]int64, len(flat))
		for i, leaf := range flat {
			v, err := convertLeaf(leaf, kind)
			if err != nil {
				return nil, err
			}
			out[i] = v.(int64)
		}
		return out, nil
	case types.Uint:
		out := make([]uint64, len(flat))
		for i, leaf := range flat {
			v, err := convertLeaf(leaf, kind)
			if err != nil {
				return nil, err
			}
			out[i] = v.(uint64)
		}
		return out, nil
	case types.Float:
		out := make([]float64, len(flat))
		for i, leaf := range flat {
			v, err := convertLeaf(leaf, kind)
			if err != nil {
				return nil, err
			}
			out[i] = v.(float64)
		}
		return out, nil
	case types.String:
		out := make([]string, len(flat))
		for i, leaf := range flat {
			v, err := convertLeaf(leaf, kind)
			if err != nil {
				return nil, err
			}
			out[i] = v.(string)
		}
		return out, nil
	case types.Blob:
		out := make([][]byte, len(flat))
		for i, leaf := range flat {
			v, err := convertLeaf(leaf, kind)
			if err != nil {
				return nil, err
			}
			out[i] = v.([]byte)
		}
		return out, nil
	default:
		return nil, errors.WrapWithCode(errors.New(kind.String()), errors.ErrUnsupportedOp, "jsonbackend: property kind")
	}
}

// convertLeaf coerces a single decoded-JSON leaf (bool, int64, float64 or
// string, per jsonvalue.Infer's element kind) into kind's native Go
// representation.
func convertLeaf(leaf any, kind types.Kind) (any, error) {
	switch kind {
	case types.Bool:
		switch v := leaf.(type) {
		case bool:
			return v, nil
		case int64:
			return v != 0, nil
		case float64:
			return v != 0, nil
		}
	case types.Int:
		switch v := leaf.(type) {
		case int64:
			return v, nil
		case float64:
			return int64(v), nil
		case bool:
			if v {
				return int64(1), nil
			}
			return int64(0), nil
		}
	case types.Uint:
		switch v := leaf.(type) {
		case int64:
			return uint64(v), nil
		case float64:
			return uint64(v), nil
		case bool:
			if v {
				return uint64(1), nil
			}
			return uint64(0), nil
		}
	case types.Float:
		switch v := leaf.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case bool:
			if v {
				return 1.0, nil
			}
			return 0.0, nil
		}
	case types.String:
		switch v := leaf.(type) {
		case string:
			return v, nil
		case bool, int64, float64:
			return "", errors.WrapWithCode(errors.New("expected string"), errors.ErrTypeMismatch, "jsonbackend: non-string property element")
		}
	case types.Blob:
		if s, ok := leaf.(string); ok {
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrFormat, "jsonbackend: decoding base64 blob")
			}
			return b, nil
		}
	}
	return nil, errors.WrapWithCode(errors.New(kind.String()), errors.ErrTypeMismatch, "jsonbackend: unconvertible property element")
}

// toAnySlice flattens one of DecodeFlat's typed slice results into a
// generic []any of JSON-marshalable leaves.
func toAnySlice(v any) []any {
	switch s := v.(type) {
	case []bool:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out
	case []int64:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out
	case []uint64:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out
	case []float64:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out
	case [][]byte:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out
	default:
		return nil
	}
}
