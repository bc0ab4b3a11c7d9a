package instance

import (
	"fmt"

	"github.com/sintef/dlite-go/internal/errors"
)

// The toXSlice helpers accept either a bare scalar (when nmemb == 1) or a
// slice of exactly nmemb elements, and normalise both to a slice — letting
// SetPropertyByIndex treat scalar and dimensional properties uniformly.

func toBoolSlice(value any, nmemb int) ([]bool, error) {
	switch v := value.(type) {
	case bool:
		if nmemb != 1 {
			return nil, errors.WrapWithCode(errors.New("scalar for dimensional property"), errors.ErrShapeMismatch, "bool")
		}
		return []bool{v}, nil
	case []bool:
		if len(v) != nmemb {
			return nil, lengthMismatch(nmemb, len(v))
		}
		return v, nil
	default:
		return nil, errors.WrapWithCode(errors.New(goType(value)), errors.ErrTypeMismatch, "expected bool or []bool")
	}
}

func toInt64Slice(value any, nmemb int) ([]int64, error) {
	switch v := value.(type) {
	case int:
		return scalarInt64(int64(v), nmemb)
	case int64:
		return scalarInt64(v, nmemb)
	case []int:
		out := make([]int64, len(v))
		for i, x := range v {
			out[i] = int64(x)
		}
		if len(out) != nmemb {
			return nil, lengthMismatch(nmemb, len(out))
		}
		return out, nil
	case []int64:
		if len(v) != nmemb {
			return nil, lengthMismatch(nmemb, len(v))
		}
		return v, nil
	default:
		return nil, errors.WrapWithCode(errors.New(goType(value)), errors.ErrTypeMismatch, "expected int or []int64")
	}
}

func scalarInt64(v int64, nmemb int) ([]int64, error) {
	if nmemb != 1 {
		return nil, errors.WrapWithCode(errors.New("scalar for dimensional property"), errors.ErrShapeMismatch, "int")
	}
	return []int64{v}, nil
}

func toUint64Slice(value any, nmemb int) ([]uint64, error) {
	switch v := value.(type) {
	case uint:
		return scalarUint64(uint64(v), nmemb)
	case uint64:
		return scalarUint64(v, nmemb)
	case int:
		return scalarUint64(uint64(v), nmemb)
	case []uint64:
		if len(v) != nmemb {
			return nil, lengthMismatch(nmemb, len(v))
		}
		return v, nil
	case []int:
		out := make([]uint64, len(v))
		for i, x := range v {
			out[i] = uint64(x)
		}
		if len(out) != nmemb {
			return nil, lengthMismatch(nmemb, len(out))
		}
		return out, nil
	default:
		return nil, errors.WrapWithCode(errors.New(goType(value)), errors.ErrTypeMismatch, "expected uint or []uint64")
	}
}

func scalarUint64(v uint64, nmemb int) ([]uint64, error) {
	if nmemb != 1 {
		return nil, errors.WrapWithCode(errors.New("scalar for dimensional property"), errors.ErrShapeMismatch, "uint")
	}
	return []uint64{v}, nil
}

func toFloat64Slice(value any, nmemb int) ([]float64, error) {
	switch v := value.(type) {
	case float64:
		return scalarFloat64(v, nmemb)
	case float32:
		return scalarFloat64(float64(v), nmemb)
	case int:
		return scalarFloat64(float64(v), nmemb)
	case []float64:
		if len(v) != nmemb {
			return nil, lengthMismatch(nmemb, len(v))
		}
		return v, nil
	case [][]float64:
		// A caller passing a nested array (e.g. from jsonvalue) flattened
		// row-major; accept it flattened for convenience.
		flat := make([]float64, 0, nmemb)
		for _, row := range v {
			flat = append(flat, row...)
		}
		if len(flat) != nmemb {
			return nil, lengthMismatch(nmemb, len(flat))
		}
		return flat, nil
	default:
		return nil, errors.WrapWithCode(errors.New(goType(value)), errors.ErrTypeMismatch, "expected float64 or []float64")
	}
}

func scalarFloat64(v float64, nmemb int) ([]float64, error) {
	if nmemb != 1 {
		return nil, errors.WrapWithCode(errors.New("scalar for dimensional property"), errors.ErrShapeMismatch, "float")
	}
	return []float64{v}, nil
}

func toByteSlices(value any, nmemb, elemSize int) ([][]byte, error) {
	switch v := value.(type) {
	case []byte:
		if nmemb != 1 {
			return nil, errors.WrapWithCode(errors.New("scalar for dimensional property"), errors.ErrShapeMismatch, "blob")
		}
		return [][]byte{v}, nil
	case [][]byte:
		if len(v) != nmemb {
			return nil, lengthMismatch(nmemb, len(v))
		}
		return v, nil
	default:
		return nil, errors.WrapWithCode(errors.New(goType(value)), errors.ErrTypeMismatch, "expected []byte or [][]byte")
	}
}

func toStringSlice(value any, nmemb int) ([]string, error) {
	switch v := value.(type) {
	case string:
		if nmemb != 1 {
			return nil, errors.WrapWithCode(errors.New("scalar for dimensional property"), errors.ErrShapeMismatch, "string")
		}
		return []string{v}, nil
	case []string:
		if len(v) != nmemb {
			return nil, lengthMismatch(nmemb, len(v))
		}
		return v, nil
	default:
		return nil, errors.WrapWithCode(errors.New(goType(value)), errors.ErrTypeMismatch, "expected string or []string")
	}
}

func lengthMismatch(want, got int) error {
	return errors.WrapWithCode(errors.New("length mismatch"), errors.ErrShapeMismatch, "expected %d elements, got %d", want, got)
}

func goType(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
