// Package datamodel defines the backend-agnostic contract a storage driver
// implements to read and write a single instance (spec.md §4.E): a required
// Handle interface every backend implements, plus a type-asserted
// OptionalBackend interface for write and introspection capabilities some
// backends decline. The orchestrator (internal/orchestrator) is the only
// caller of these methods; individual backends (e.g.
// internal/storage/jsonbackend) implement them against whatever on-disk or
// in-memory representation they choose.
package datamodel

import (
	"context"

	"github.com/sintef/dlite-go/internal/types"
)

// Storage represents an open connection to a backend-specific location
// (a file, a directory, a database handle). Open returns one; Close
// releases it.
type Storage interface {
	// Close releases resources held by the storage connection.
	Close() error
}

// Options carries backend-specific configuration, passed through verbatim
// from the caller to Open.
type Options map[string]string

// Driver is the required capability set every storage backend implements.
type Driver interface {
	// Open connects to the storage identified by uri.
	Open(ctx context.Context, uri string, options Options) (Storage, error)

	// DataModel opens a handle onto the instance identified by uuid within
	// storage. uuid must already be a well-formed, derived instance uuid.
	DataModel(ctx context.Context, storage Storage, uuid string) (Handle, error)
}

// Handle addresses a single instance's stored representation through its
// required read capability. Every method after DataModel operates through
// a Handle, not the owning Storage.
type Handle interface {
	// Close releases the handle. It does not close the owning Storage.
	Close() error

	// GetMetadata returns the uri of the entity this instance conforms to.
	GetMetadata() (string, error)

	// GetDimensionSize returns the size of the named dimension.
	GetDimensionSize(name string) (int, error)

	// GetProperty returns the flat, C-ordered contents of the named
	// property: exactly elementSize * Π dims bytes for a fixed-size kind,
	// or a NUL-separated run of strings for StringPtr (whose total length
	// the backend alone can know in advance).
	GetProperty(name string, kind types.Kind, elementSize int, dims []int) ([]byte, error)
}

// OptionalBackend is the type-asserted set of write and introspection
// methods a Handle may additionally implement, mirroring the teacher's
// PoolManager/VolumeManager capability split (internal/libvirt/storage):
// the required interface covers what every caller can assume, and a second
// interface, probed with AsOptionalBackend, covers what only some backends
// support. A backend serving a read-only or schema-free store can implement
// just Handle and decline every OptionalBackend capability; one that backs
// the full read/write contract (e.g. internal/storage/jsonbackend) embeds
// Handle and implements OptionalBackend on the same type.
type OptionalBackend interface {
	// SetMetadata records the entity uri this instance conforms to.
	SetMetadata(uri string) error

	// SetDimensionSize records the size of the named dimension.
	SetDimensionSize(name string, size int) error

	// SetProperty stores the flat, C-ordered contents of the named
	// property from data (exactly elementSize * Π dims bytes).
	SetProperty(name string, kind types.Kind, elementSize int, dims []int, data []byte) error

	// HasDimension reports whether the named dimension is stored.
	HasDimension(name string) (bool, error)

	// HasProperty reports whether the named property is stored.
	HasProperty(name string) (bool, error)

	// GetDataName returns the instance's optional human-readable label.
	GetDataName() (string, error)

	// SetDataName sets the instance's optional human-readable label.
	SetDataName(name string) error

	// GetUUIDs lists every instance uuid stored alongside this one.
	GetUUIDs() ([]string, error)

	// GetEntity returns the full entity-file contents this instance's
	// backend has embedded alongside the instance data, if any.
	GetEntity() ([]byte, error)

	// SetEntity stores a full entity-file alongside the instance data.
	SetEntity(data []byte) error
}

// AsOptionalBackend type-asserts h against OptionalBackend. Callers that
// need to write, rather than merely read, a Handle (internal/orchestrator's
// Save) use this instead of assuming every backend supports it.
func AsOptionalBackend(h Handle) (OptionalBackend, bool) {
	ob, ok := h.(OptionalBackend)
	return ob, ok
}

// ErrUnsupportedMethod is returned when a Handle fails its AsOptionalBackend
// assertion, or by an OptionalBackend method a backend implements but
// declines at runtime (e.g. a writable flag set false); callers wrap it
// with errors.ErrUnsupportedOp. jsonbackend sets Backend to its registry
// name; orchestrator.Save, which sees only the Handle, sets Backend to
// "handle", so that diagnostic does not name the driver.
type ErrUnsupportedMethod struct {
	Backend string
	Method  string
}

func (e *ErrUnsupportedMethod) Error() string {
	return e.Backend + ": " + e.Method + " not supported"
}
