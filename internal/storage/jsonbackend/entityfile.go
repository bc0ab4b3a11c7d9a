package jsonbackend

import (
	"encoding/json"
	"strings"

	"github.com/sintef/dlite-go/internal/entity"
	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/types"
)

// entityDoc mirrors the entity-file JSON shape of spec.md §6: a named,
// versioned schema header plus declarative dimensions and properties.
type entityDoc struct {
	Name        string       `json:"name,omitempty"`
	Version     string       `json:"version,omitempty"`
	Namespace   string       `json:"namespace,omitempty"`
	URI         string       `json:"uri,omitempty"`
	Description string       `json:"description,omitempty"`
	Dimensions  []entityDim  `json:"dimensions"`
	Properties  []entityProp `json:"properties"`
}

type entityDim struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type entityProp struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Dims        []string `json:"dims,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Description string   `json:"description,omitempty"`
}

// CountEntityDimensions validates and counts an entity file's "dimensions"
// array, grounded on the original's dlite_json_entity_dim_count: every
// dimension must have a non-blank name. It returns an error instead of the
// original's -1 sentinel.
func CountEntityDimensions(raw []byte) (int, error) {
	var doc entityDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrFormat, "jsonbackend: parsing entity file")
	}

	count := 0
	for i, d := range doc.Dimensions {
		if strings.TrimSpace(d.Name) == "" {
			return 0, errors.WrapWithCode(errors.New("blank dimension name"), errors.ErrFormat,
				"jsonbackend: dimension [%d] has no valid name", i+1)
		}
		count++
	}
	return count, nil
}

// CountEntityProperties validates and counts an entity file's "properties"
// array, grounded on the original's dlite_json_entity_prop_count: every
// property needs a non-blank name, a recognised type, and "dims" entries
// (if present) that name a declared dimension.
func CountEntityProperties(raw []byte) (int, error) {
	var doc entityDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrFormat, "jsonbackend: parsing entity file")
	}

	count := 0
	for i, p := range doc.Properties {
		if strings.TrimSpace(p.Name) == "" {
			return 0, errors.WrapWithCode(errors.New("blank property name"), errors.ErrFormat,
				"jsonbackend: property [%d] has no valid name", i+1)
		}
		if _, ok := types.ParseKind(p.Type); !ok {
			return 0, errors.WrapWithCode(errors.New(p.Type), errors.ErrFormat,
				"jsonbackend: property %q has invalid type %q", p.Name, p.Type)
		}
		if err := checkDimensions(p.Name, p.Dims, doc.Dimensions); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

// ParseEntityFile validates raw as an entity-file document and builds the
// corresponding entity.Entity, translating each property's named dimension
// references (the on-disk form) to the integer indices entity.Property.Dims
// stores.
func ParseEntityFile(raw []byte) (*entity.Entity, error) {
	if _, err := CountEntityDimensions(raw); err != nil {
		return nil, err
	}
	if _, err := CountEntityProperties(raw); err != nil {
		return nil, err
	}

	var doc entityDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFormat, "jsonbackend: parsing entity file")
	}

	dims := make([]entity.Dimension, len(doc.Dimensions))
	for i, d := range doc.Dimensions {
		dims[i] = entity.Dimension{Name: d.Name, Description: d.Description}
	}

	props := make([]entity.Property, len(doc.Properties))
	for i, p := range doc.Properties {
		kind, _ := types.ParseKind(p.Type)
		propDims := make([]int, len(p.Dims))
		for j, name := range p.Dims {
			idx, _ := dimIndex(name, doc.Dimensions)
			propDims[j] = idx
		}
		props[i] = entity.Property{
			Name:        p.Name,
			Type:        kind,
			ElementSize: elementSizeFor(kind),
			Dims:        propDims,
			Unit:        p.Unit,
			Description: p.Description,
		}
	}

	uri := doc.URI
	if uri == "" && doc.Name != "" {
		uri = entity.URIJoin(doc.Namespace, doc.Version, doc.Name)
	}

	return entity.Create(uri, doc.Description, dims, props)
}

// elementSizeFor picks a default declared size for kinds whose wire size
// isn't otherwise specified in an entity file: 8 bytes for a blob, 64 bytes
// for an inline string buffer.
func elementSizeFor(kind types.Kind) int {
	switch kind {
	case types.Blob:
		return 8
	case types.String:
		return 64
	default:
		return 0
	}
}

// dimIndex resolves a property's named dimension reference to the integer
// index entity.Property.Dims stores.
func dimIndex(name string, entityDims []entityDim) (int, bool) {
	for i, d := range entityDims {
		if d.Name == name {
			return i, true
		}
	}
	return 0, false
}

// checkDimensions verifies that every name in propDims matches a declared
// entity dimension, grounded on the original's check_dimensions.
func checkDimensions(propName string, propDims []string, entityDims []entityDim) error {
	for _, name := range propDims {
		found := false
		for _, d := range entityDims {
			if d.Name == name {
				found = true
				break
			}
		}
		if !found {
			return errors.WrapWithCode(errors.New(name), errors.ErrFormat,
				"jsonbackend: dimension %q of property %q is not defined", name, propName)
		}
	}
	return nil
}
