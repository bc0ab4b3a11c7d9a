// Package jsonbackend implements dlite's reference JSON storage backend
// (spec.md §6): one JSON file per instance, under a directory opened as
// the storage's uri. It registers itself under the name "json" with the
// process-wide plugin registry (internal/storage).
package jsonbackend

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sintef/dlite-go/internal/datamodel"
	"github.com/sintef/dlite-go/internal/errors"
	"github.com/sintef/dlite-go/internal/jsonvalue"
	"github.com/sintef/dlite-go/internal/storage"
	"github.com/sintef/dlite-go/internal/types"
)

// Name is the name this backend registers itself under.
const Name = "json"

func init() {
	_ = storage.Default().Register(Name, Driver{})
}

// Driver implements datamodel.Driver against a directory of <uuid>.json
// instance files.
type Driver struct{}

// Open treats uri as a directory path; it's created if missing and
// options["writable"] (default "true") is parsed per spec.md §6.
func (Driver) Open(ctx context.Context, uri string, options datamodel.Options) (datamodel.Storage, error) {
	writable := true
	if v, ok := options["writable"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrInvalidArg, "jsonbackend: invalid writable option %q", v)
		}
		writable = b
	}

	if writable {
		if err := os.MkdirAll(uri, 0o755); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrIO, "jsonbackend: creating storage directory %s", uri)
		}
	} else if info, err := os.Stat(uri); err != nil || !info.IsDir() {
		return nil, errors.WrapWithCode(errors.New(uri), errors.ErrIO, "jsonbackend: storage directory not found")
	}

	return &Storage{dir: uri, writable: writable}, nil
}

// DataModel opens (or, if writable and absent, begins creating) the
// instance file for uuid.
func (Driver) DataModel(ctx context.Context, st datamodel.Storage, uuid string) (datamodel.Handle, error) {
	s, ok := st.(*Storage)
	if !ok {
		return nil, errors.WrapWithCode(errors.New("wrong storage type"), errors.ErrInvalidArg, "jsonbackend.DataModel")
	}

	path := filepath.Join(s.dir, uuid+".json")
	d := &doc{UUID: uuid, Dimensions: map[string]int{}, Properties: map[string]any{}}

	if data, err := os.ReadFile(path); err == nil {
		if err := decodeUseNumber(data, d); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrFormat, "jsonbackend: parsing instance file %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.WrapWithCode(err, errors.ErrIO, "jsonbackend: reading instance file %s", path)
	} else if !s.writable {
		return nil, errors.WrapWithCode(errors.New(path), errors.ErrNotFound, "jsonbackend: instance file not found")
	}

	return &Handle{path: path, writable: s.writable, doc: d}, nil
}

// Storage is an open connection to a directory of instance files.
type Storage struct {
	dir      string
	writable bool
}

// Close is a no-op: Storage holds no OS resources beyond the directory
// path itself.
func (s *Storage) Close() error { return nil }

// doc mirrors the instance-file JSON shape of spec.md §6.
type doc struct {
	UUID       string          `json:"uuid,omitempty"`
	URI        string          `json:"uri,omitempty"`
	Meta       string          `json:"meta"`
	DataName   string          `json:"data_name,omitempty"`
	Dimensions map[string]int  `json:"dimensions"`
	Properties map[string]any  `json:"properties"`
	Entity     json.RawMessage `json:"entity,omitempty"`
}

// decodeUseNumber parses data into v with the decoder's UseNumber option
// set, so that every number nested under doc.Properties (a map[string]any)
// decodes as a json.Number instead of a float64. jsonvalue.KindOf then
// classifies int vs. real from the literal's digits rather than a
// round-tripped float64 comparison, which keeps integers beyond 2^53 exact.
func decodeUseNumber(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Handle is a single instance file, buffered in memory and flushed to disk
// on Close when the owning storage is writable.
type Handle struct {
	mu       sync.Mutex
	path     string
	writable bool
	doc      *doc
	dirty    bool
}

// Close flushes any pending writes to disk.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.dirty || !h.writable {
		return nil
	}
	data, err := json.MarshalIndent(h.doc, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrFormat, "jsonbackend: encoding instance file %s", h.path)
	}
	if err := os.WriteFile(h.path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO, "jsonbackend: writing instance file %s", h.path)
	}
	h.dirty = false
	return nil
}

// GetMetadata returns the entity uri this instance conforms to.
func (h *Handle) GetMetadata() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.doc.Meta, nil
}

// SetMetadata records the entity uri this instance conforms to.
func (h *Handle) SetMetadata(uri string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.doc.Meta = uri
	h.dirty = true
	return nil
}

// GetDimensionSize returns the size of the named dimension.
func (h *Handle) GetDimensionSize(name string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	size, ok := h.doc.Dimensions[name]
	if !ok {
		return 0, errors.WrapWithCode(errors.New(name), errors.ErrNotFound, "jsonbackend: dimension not stored")
	}
	return size, nil
}

// SetDimensionSize records the size of the named dimension.
func (h *Handle) SetDimensionSize(name string, size int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.writable {
		return unsupported("SetDimensionSize")
	}
	h.doc.Dimensions[name] = size
	h.dirty = true
	return nil
}

// GetProperty decodes the named property's stored JSON value into the
// flat, C-ordered byte contract datamodel.Handle promises.
func (h *Handle) GetProperty(name string, kind types.Kind, elementSize int, dims []int) ([]byte, error) {
	h.mu.Lock()
	node, ok := h.doc.Properties[name]
	h.mu.Unlock()
	if !ok {
		return nil, errors.WrapWithCode(errors.New(name), errors.ErrNotFound, "jsonbackend: property not stored")
	}

	val, err := jsonvalue.Infer(node, jsonvalue.DefaultNdimMax)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFormat, "jsonbackend: inferring property %s", name)
	}

	nmemb := 1
	for _, d := range dims {
		nmemb *= d
	}
	if nmemb == 0 {
		nmemb = 1
	}

	if kind == types.StringPtr {
		return datamodel.EncodeStringPtr(nmemb, flatToGo(val, kind))
	}
	return encodeFlatBytes(kind, elementSize, nmemb, val)
}

// SetProperty stores data (the flat, C-ordered contents datamodel.Handle's
// contract provides) back as a decoded JSON node.
func (h *Handle) SetProperty(name string, kind types.Kind, elementSize int, dims []int, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.writable {
		return unsupported("SetProperty")
	}

	var node any
	if kind == types.StringPtr {
		v, err := datamodel.DecodeStringPtr(len(dims) == 0, data)
		if err != nil {
			return err
		}
		node = stringsToNode(v, dims)
	} else {
		n, err := decodeFlatToNode(kind, elementSize, dims, data)
		if err != nil {
			return err
		}
		node = n
	}

	h.doc.Properties[name] = node
	h.dirty = true
	return nil
}

// HasDimension reports whether the named dimension is stored.
func (h *Handle) HasDimension(name string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.doc.Dimensions[name]
	return ok, nil
}

// HasProperty reports whether the named property is stored.
func (h *Handle) HasProperty(name string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.doc.Properties[name]
	return ok, nil
}

// GetDataName returns the instance's optional human-readable label.
func (h *Handle) GetDataName() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.doc.DataName, nil
}

// SetDataName sets the instance's optional human-readable label.
func (h *Handle) SetDataName(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.writable {
		return unsupported("SetDataName")
	}
	h.doc.DataName = name
	h.dirty = true
	return nil
}

// GetUUIDs lists every instance uuid stored in the same directory.
func (h *Handle) GetUUIDs() ([]string, error) {
	dir := filepath.Dir(h.path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrIO, "jsonbackend: listing %s", dir)
	}
	var uuids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		uuids = append(uuids, strings.TrimSuffix(e.Name(), ".json"))
	}
	return uuids, nil
}

// GetEntity returns the entity-file JSON embedded in this instance file, for
// a handle opened on a meta-entity's own uuid (the schema for entities is
// itself stored as an instance, per spec.md's meta-entity recursion).
func (h *Handle) GetEntity() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.doc.Entity) == 0 {
		return nil, errors.WrapWithCode(errors.New(h.path), errors.ErrNotFound, "jsonbackend: no entity stored")
	}
	return []byte(h.doc.Entity), nil
}

// SetEntity validates data as an entity-file document (per
// CountEntityDimensions/CountEntityProperties) and embeds it in this
// instance file.
func (h *Handle) SetEntity(data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.writable {
		return unsupported("SetEntity")
	}
	if _, err := CountEntityDimensions(data); err != nil {
		return err
	}
	if _, err := CountEntityProperties(data); err != nil {
		return err
	}
	h.doc.Entity = json.RawMessage(data)
	h.dirty = true
	return nil
}

func unsupported(method string) error {
	return errors.WrapWithCode(&datamodel.ErrUnsupportedMethod{Backend: Name, Method: method}, errors.ErrUnsupportedOp, "jsonbackend")
}
