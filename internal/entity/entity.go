// Package entity implements dlite's schema record: named dimensions and
// typed, optionally multi-dimensional properties, plus the derived memory
// layout that internal/instance materialises instances from.
//
// Entity is deliberately the one place the layout algorithm lives (spec.md
// §4.D calls it out as shared between ordinary entities and meta-entities):
// internal/instance depends on entity.Entity and its Layout, not the other
// way around, so there is no import cycle between "what shape an instance
// has" and "how an instance's bytes are read and written".
package entity

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/metadata"
	"github.com/sintef/dlite-go/internal/metrics"
	"github.com/sintef/dlite-go/internal/types"
	"github.com/sintef/dlite-go/internal/uuid"
	"github.com/sintef/dlite-go/pkg/logger"
)

var validate = validator.New()

func init() {
	// "nonblank" generalises dlite's "non-whitespace name" invariant
	// (spec.md §3) to a validator rule we can reuse on every declared name.
	_ = validate.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Dimension is a named symbolic size that parameterises property shapes.
type Dimension struct {
	Name        string `validate:"required,nonblank"`
	Description string
}

// Property is a named, typed, optionally multi-dimensional field.
type Property struct {
	Name        string `validate:"required,nonblank"`
	Type        types.Kind
	ElementSize int // declared element size, see types.Size; ignored for StringPtr
	Dims        []int
	Unit        string
	Description string
}

// NDims reports the property's rank (0 for a scalar).
func (p *Property) NDims() int { return len(p.Dims) }

// Layout is an entity's derived memory layout, computed once by Create or
// Load and thereafter immutable.
type Layout struct {
	Size        int   // total bytes of an instance
	DimOffset   int   // byte offset of the dimension-size array
	PropOffsets []int // byte offset of each property slot
	RelOffset   int   // byte offset of the reserved relation slot
	MaxAlign    int
}

// pinnedRefcount marks the schema-entity singleton: IncRef/DecRef on it are
// no-ops, so the meta hierarchy's root can never reach zero and be freed.
const pinnedRefcount = -1

// Entity is a named, versioned schema: a header (uuid, optional uri, meta),
// declarative dimensions and properties, and a derived Layout.
type Entity struct {
	mu sync.Mutex // guards refcount; callers still must serialise per spec.md §5

	UUID        string
	URI         string
	Description string
	Meta        *Entity
	Dimensions  []Dimension
	Properties  []Property
	Layout      Layout

	refcount int

	logger  logger.Logger
	metrics metrics.Collector
}

var schemaEntity = &Entity{
	UUID:        "00000000-0000-0000-0000-000000000000",
	URI:         "http://meta.sintef.no/0.1/schema-entity",
	Description: "Schema for Entities",
	Dimensions: []Dimension{
		{Name: "ndimensions", Description: "Number of dimensions"},
		{Name: "nproperties", Description: "Number of properties"},
		{Name: "nrelations", Description: "Number of relations"},
	},
	Properties: []Property{
		{Name: "dimensions", Type: types.StringPtr, Dims: []int{0}, Description: "Array of dimensions"},
		{Name: "properties", Type: types.StringPtr, Dims: []int{1}, Description: "Array of properties"},
	},
	refcount: pinnedRefcount,
}

// SchemaEntity returns the pinned, process-wide entity-of-entities
// singleton. Its Meta is nil, so the meta hierarchy ends here instead of
// looping back on itself, and its refcount is sentinel-pinned so IncRef and
// DecRef never change it.
func SchemaEntity() *Entity { return schemaEntity }

// Create builds a new entity from a uri, description and declarative
// dimensions/properties, validating names and property dimension references
// and computing the derived Layout.
//
// uri may be empty, in which case a random v4 uuid is generated; otherwise
// the uuid is the v5 hash of uri (spec.md §3). Trailing opts attach a
// logger and/or metrics collector that IncRef/DecRef report through;
// callers that omit them get a discarding logger and a no-op collector.
func Create(uri, description string, dimensions []Dimension, properties []Property, opts ...Option) (*Entity, error) {
	if err := validateNames(dimensions, properties); err != nil {
		return nil, err
	}
	if err := validateDims(dimensions, properties); err != nil {
		return nil, err
	}

	layout, err := computeLayout(dimensions, properties)
	if err != nil {
		return nil, err
	}

	id, _ := uuid.Derive(uri)

	dimsCopy := append([]Dimension(nil), dimensions...)
	propsCopy := make([]Property, len(properties))
	for i, p := range properties {
		propsCopy[i] = p
		propsCopy[i].Dims = append([]int(nil), p.Dims...)
	}

	e := &Entity{
		UUID:        id,
		URI:         uri,
		Description: description,
		Dimensions:  dimsCopy,
		Properties:  propsCopy,
		Layout:      layout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = resolveLogger(e.logger)
	e.metrics = resolveMetrics(e.metrics)

	e.logger.Debug("entity created", logger.URI(e.URI), logger.UUID(e.UUID), logger.Int("properties", len(e.Properties)))
	return e, nil
}

func validateNames(dimensions []Dimension, properties []Property) error {
	seen := map[string]bool{}
	for _, d := range dimensions {
		if err := validate.Struct(d); err != nil {
			return errors.WrapWithCode(err, errors.ErrInvalidArg, "dimension name %q", d.Name)
		}
		if seen[d.Name] {
			return errors.WrapWithCode(errors.New(d.Name), errors.ErrInvalidArg, "duplicate dimension name")
		}
		seen[d.Name] = true
	}

	seen = map[string]bool{}
	for _, p := range properties {
		if err := validate.Struct(p); err != nil {
			return errors.WrapWithCode(err, errors.ErrInvalidArg, "property name %q", p.Name)
		}
		if seen[p.Name] {
			return errors.WrapWithCode(errors.New(p.Name), errors.ErrInvalidArg, "duplicate property name")
		}
		seen[p.Name] = true
		if _, ok := kindKnown(p.Type); !ok {
			return errors.WrapWithCode(errors.New(p.Name), errors.ErrInvalidArg, "unknown property type")
		}
	}
	return nil
}

func kindKnown(k types.Kind) (types.Kind, bool) {
	switch k {
	case types.Blob, types.Bool, types.Int, types.Uint, types.Float, types.String, types.StringPtr:
		return k, true
	default:
		return k, false
	}
}

func validateDims(dimensions []Dimension, properties []Property) error {
	for _, p := range properties {
		for _, di := range p.Dims {
			if di < 0 || di >= len(dimensions) {
				return errors.WrapWithCode(errors.New(p.Name), errors.ErrInvalidArg,
					"property references unknown dimension index %d", di)
			}
		}
	}
	return nil
}

// computeLayout walks the instance header, dimension-size array and
// property slots in declaration order, accumulating byte offsets and
// padding via the pure arithmetic of internal/types. Dimensional properties
// are laid out as a pointer slot regardless of element kind.
func computeLayout(dimensions []Dimension, properties []Property) (Layout, error) {
	maxAlign := 1

	// Header: inline uuid buffer, then uri pointer, then meta pointer.
	uuidSize := types.Size(types.String, uuid.Length+1)
	offset := 0
	maxAlign = max(maxAlign, types.Alignment(types.String, uuid.Length+1))

	uriOffset := types.OffsetOfNext(offset, uuidSize, types.StringPtr, 0)
	maxAlign = max(maxAlign, types.Alignment(types.StringPtr, 0))

	metaOffset := types.OffsetOfNext(uriOffset, types.Size(types.StringPtr, 0), types.StringPtr, 0)
	maxAlign = max(maxAlign, types.Alignment(types.StringPtr, 0))

	prevOffset, prevSize := metaOffset, types.Size(types.StringPtr, 0)

	// Dimension-size array: N x size_t.
	dimOffset := types.OffsetOfNext(prevOffset, prevSize, types.Uint, 8)
	maxAlign = max(maxAlign, types.Alignment(types.Uint, 8))
	dimArraySize := len(dimensions) * types.Size(types.Uint, 8)
	prevOffset, prevSize = dimOffset, dimArraySize

	propOffsets := make([]int, len(properties))
	for i, p := range properties {
		var slotKind types.Kind
		var declSize int
		if p.NDims() > 0 {
			slotKind, declSize = types.StringPtr, 0
		} else {
			slotKind, declSize = p.Type, p.ElementSize
		}

		off := types.OffsetOfNext(prevOffset, prevSize, slotKind, declSize)
		maxAlign = max(maxAlign, types.Alignment(slotKind, declSize))

		propOffsets[i] = off
		prevOffset, prevSize = off, types.Size(slotKind, declSize)
	}

	// Reserved relation slot.
	relOffset := types.OffsetOfNext(prevOffset, prevSize, types.StringPtr, 0)
	maxAlign = max(maxAlign, types.Alignment(types.StringPtr, 0))
	finalOffset := relOffset + types.Size(types.StringPtr, 0)

	size := types.PadToAlignment(finalOffset, maxAlign)

	return Layout{
		Size:        size,
		DimOffset:   dimOffset,
		PropOffsets: propOffsets,
		RelOffset:   relOffset,
		MaxAlign:    maxAlign,
	}, nil
}

// IncRef increments the entity's reference count and returns the new value.
// It is a no-op on the pinned schema entity.
func (e *Entity) IncRef() int {
	if e == schemaEntity {
		return pinnedRefcount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refcount++
	resolveMetrics(e.metrics).RecordEntityRefcount("incref", e.URI, e.refcount)
	return e.refcount
}

// DecRef decrements the entity's reference count, decrefing its meta once it
// reaches zero. Decrementing below zero is reported as ErrRefcountUnderflow
// rather than silently going negative.
func (e *Entity) DecRef() (int, error) {
	if e == schemaEntity {
		return pinnedRefcount, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.refcount <= 0 {
		resolveMetrics(e.metrics).RecordRefcountUnderflow(e.URI)
		resolveLogger(e.logger).Warn("entity decref underflow", logger.URI(e.URI))
		return e.refcount, errors.WrapWithCode(errors.New(e.URI), errors.ErrRefcountUnderflow,
			"decref on entity with non-positive refcount")
	}
	e.refcount--
	resolveMetrics(e.metrics).RecordEntityRefcount("decref", e.URI, e.refcount)
	if e.refcount == 0 && e.Meta != nil {
		if _, err := e.Meta.DecRef(); err != nil {
			return e.refcount, err
		}
	}
	return e.refcount, nil
}

// Refcount returns the entity's current reference count.
func (e *Entity) Refcount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refcount
}

// GetPropertyByName returns the named property, or an error if none exists.
func (e *Entity) GetPropertyByName(name string) (*Property, error) {
	i := e.GetPropertyIndex(name)
	if i < 0 {
		return nil, errors.WrapWithCode(errors.New(name), errors.ErrNotFound, "property not found")
	}
	return &e.Properties[i], nil
}

// GetPropertyByIndex returns the property at index i, or an error if out of range.
func (e *Entity) GetPropertyByIndex(i int) (*Property, error) {
	if i < 0 || i >= len(e.Properties) {
		return nil, errors.WrapWithCode(errors.New("index out of range"), errors.ErrNotFound, "property index %d", i)
	}
	return &e.Properties[i], nil
}

// GetDimensionIndex returns the index of the named dimension, or -1 if it
// doesn't exist (spec.md §4.C's negative-index miss convention; callers at
// the public API boundary translate this to ErrNotFound).
func (e *Entity) GetDimensionIndex(name string) int {
	for i, d := range e.Dimensions {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// GetPropertyIndex returns the index of the named property, or -1 if it
// doesn't exist.
func (e *Entity) GetPropertyIndex(name string) int {
	for i, p := range e.Properties {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// URIJoin is a convenience wrapper over metadata.Join, kept here so callers
// building entity URIs don't need a second import.
func URIJoin(namespace, version, name string) string {
	return metadata.Join(namespace, version, name)
}
