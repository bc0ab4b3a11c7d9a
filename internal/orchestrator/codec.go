package orchestrator

import (
	"github.com/sintef/dlite-go/internal/datamodel"
	"github.com/sintef/dlite-go/internal/entity"
	"github.com/sintef/dlite-go/internal/instance"
	"github.com/sintef/dlite-go/internal/types"
)

// encodeValue converts a property value in the shape instance.GetPropertyByIndex
// returns it into the flat raw bytes a datamodel.Handle's SetProperty expects.
func encodeValue(p *entity.Property, value any) ([]byte, error) {
	nmemb := propertyNmemb(p, value)
	if p.Type == types.StringPtr {
		return datamodel.EncodeStringPtr(nmemb, value)
	}
	return instance.EncodeFlat(p.Type, p.ElementSize, nmemb, value)
}

// decodeBuffer converts the flat raw bytes a datamodel.Handle's GetProperty
// fills in into the shape instance.SetPropertyByIndex expects.
func decodeBuffer(p *entity.Property, raw []byte) (any, error) {
	if p.Type == types.StringPtr {
		return datamodel.DecodeStringPtr(p.NDims() == 0, raw)
	}
	v, err := instance.DecodeFlat(p.Type, p.ElementSize, raw)
	if err != nil {
		return nil, err
	}
	if p.NDims() == 0 {
		return instance.FirstElement(v), nil
	}
	return v, nil
}

// propertyNmemb infers the flattened element count of value: 1 for a
// scalar, the slice length for a dimensional property.
func propertyNmemb(p *entity.Property, value any) int {
	if p.NDims() == 0 {
		return 1
	}
	switch v := value.(type) {
	case []string:
		return len(v)
	case []bool:
		return len(v)
	case []int64:
		return len(v)
	case []uint64:
		return len(v)
	case []float64:
		return len(v)
	case [][]byte:
		return len(v)
	default:
		return 1
	}
}
