package datamodel

import "github.com/sintef/dlite-go/internal/errors"

// EncodeStringPtr packs a string or []string into the NUL-separated byte
// stream backends use on the wire for stringPtr properties, mirroring the
// original's per-element NUL-terminated string copy. A fixed element size
// doesn't apply to stringPtr data, so callers cannot pre-size a buffer the
// way they do for other kinds — this is the canonical wire shape every
// backend and the orchestrator agree on.
func EncodeStringPtr(nmemb int, value any) ([]byte, error) {
	var strs []string
	switch v := value.(type) {
	case string:
		if nmemb != 1 {
			return nil, errors.WrapWithCode(errors.New("scalar for dimensional property"), errors.ErrShapeMismatch, "stringPtr")
		}
		strs = []string{v}
	case []string:
		strs = v
	default:
		return nil, errors.WrapWithCode(errors.New("unexpected type"), errors.ErrTypeMismatch, "expected string or []string")
	}

	var buf []byte
	for _, s := range strs {
		buf = append(buf, []byte(s)...)
		buf = append(buf, 0)
	}
	return buf, nil
}

// DecodeStringPtr reverses EncodeStringPtr. scalar selects whether the
// property is a plain (non-dimensional) stringPtr, which unwraps the sole
// resulting element into a bare string instead of a length-1 slice.
func DecodeStringPtr(scalar bool, raw []byte) (any, error) {
	var out []string
	start := 0
	for i, b := range raw {
		if b == 0 {
			out = append(out, string(raw[start:i]))
			start = i + 1
		}
	}
	if scalar {
		if len(out) != 1 {
			return nil, errors.WrapWithCode(errors.New("length mismatch"), errors.ErrShapeMismatch,
				"stringPtr: expected 1 element, got %d", len(out))
		}
		return out[0], nil
	}
	return out, nil
}
