package instance

import (
	"encoding/binary"
	"math"

	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/types"
)

// EncodeFlat packs value (a scalar or a flat, C-ordered slice of nmemb
// elements) into nmemb*elementSize raw bytes of the given kind. It is
// exported for internal/orchestrator, which needs the identical conversion
// when handing property values to a storage backend's raw-byte contract.
func EncodeFlat(kind types.Kind, elementSize, nmemb int, value any) ([]byte, error) {
	size := types.Size(kind, elementSize)
	buf := make([]byte, nmemb*size)

	switch kind {
	case types.Bool:
		vals, err := toBoolSlice(value, nmemb)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			if v {
				buf[i] = 1
			}
		}
	case types.Int:
		vals, err := toInt64Slice(value, nmemb)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			putInt(buf[i*size:i*size+size], size, v)
		}
	case types.Uint:
		vals, err := toUint64Slice(value, nmemb)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			putUint(buf[i*size:i*size+size], size, v)
		}
	case types.Float:
		vals, err := toFloat64Slice(value, nmemb)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			putFloat(buf[i*size:i*size+size], size, v)
		}
	case types.Blob:
		vals, err := toByteSlices(value, nmemb, size)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			copy(buf[i*size:(i+1)*size], v)
		}
	case types.String:
		vals, err := toStringSlice(value, nmemb)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			n := copy(buf[i*size:(i+1)*size], v)
			_ = n // remaining bytes stay zero (NUL padding)
		}
	default:
		return nil, errors.WrapWithCode(errors.New(kind.String()), errors.ErrUnsupportedOp, "encodeFlat")
	}

	return buf, nil
}

// DecodeFlat unpacks raw (nmemb*elementSize bytes) into a flat slice of the
// kind's natural Go representation.
func DecodeFlat(kind types.Kind, elementSize int, raw []byte) (any, error) {
	size := types.Size(kind, elementSize)
	if size == 0 {
		return nil, nil
	}
	nmemb := len(raw) / size

	switch kind {
	case types.Bool:
		out := make([]bool, nmemb)
		for i := range out {
			out[i] = raw[i] != 0
		}
		return out, nil
	case types.Int:
		out := make([]int64, nmemb)
		for i := range out {
			out[i] = getInt(raw[i*size:(i+1)*size], size)
		}
		return out, nil
	case types.Uint:
		out := make([]uint64, nmemb)
		for i := range out {
			out[i] = getUint(raw[i*size:(i+1)*size], size)
		}
		return out, nil
	case types.Float:
		out := make([]float64, nmemb)
		for i := range out {
			out[i] = getFloat(raw[i*size:(i+1)*size], size)
		}
		return out, nil
	case types.Blob:
		out := make([][]byte, nmemb)
		for i := range out {
			b := make([]byte, size)
			copy(b, raw[i*size:(i+1)*size])
			out[i] = b
		}
		return out, nil
	case types.String:
		out := make([]string, nmemb)
		for i := range out {
			out[i] = cstr(raw[i*size : (i+1)*size])
		}
		return out, nil
	default:
		return nil, errors.WrapWithCode(errors.New(kind.String()), errors.ErrUnsupportedOp, "decodeFlat")
	}
}

// FirstElement unwraps a one-element flat slice, as produced by DecodeFlat,
// into the corresponding scalar Go value.
func FirstElement(v any) any {
	switch s := v.(type) {
	case []bool:
		return s[0]
	case []int64:
		return s[0]
	case []uint64:
		return s[0]
	case []float64:
		return s[0]
	case [][]byte:
		return s[0]
	case []string:
		return s[0]
	default:
		return v
	}
}

func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func putInt(b []byte, size int, v int64) {
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}

func getInt(b []byte, size int) int64 {
	switch size {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	default:
		return int64(binary.LittleEndian.Uint64(b))
	}
}

func putUint(b []byte, size int, v uint64) {
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, v)
	}
}

func getUint(b []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func putFloat(b []byte, size int, v float64) {
	if size == 4 {
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
		return
	}
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

func getFloat(b []byte, size int) float64 {
	if size == 4 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
