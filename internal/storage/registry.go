// Package storage implements dlite's storage plugin registry (spec.md
// §4.F): a process-wide, lazily-created table of storage backends, with
// explicit registration, search-path-based discovery of Go plugin shared
// objects, and iteration.
package storage

import (
	"os"
	"path/filepath"
	"plugin"
	"strings"
	"sync"

	"github.com/sintef/dlite-go/internal/datamodel"
	"github.com/sintef/dlite-go/internal/errors"
)

// searchPathEnvVar names the environment variable holding the directories
// to scan for storage plugin shared objects, separated by the platform list
// separator (filepath.SplitList), mirroring the original's
// DLITE_STORAGE_PLUGIN_DIRS.
const searchPathEnvVar = "DLITE_STORAGE_PLUGIN_DIRS"

// pluginSOExt is the shared-object extension the registry scans for.
const pluginSOExt = ".so"

// factorySymbol is the name of the function a plugin shared object must
// export, of type func() (string, datamodel.Driver).
const factorySymbol = "DliteStoragePlugin"

var (
	registryOnce sync.Once
	registry     *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	registryOnce.Do(func() {
		registry = newRegistry()
	})
	return registry
}

// Registry holds registered and discovered storage drivers by name.
type Registry struct {
	mu         sync.Mutex
	drivers    map[string]datamodel.Driver
	searchPath []string
	loaded     map[string]bool // shared objects already scanned, by path
}

func newRegistry() *Registry {
	r := &Registry{
		drivers: make(map[string]datamodel.Driver),
		loaded:  make(map[string]bool),
	}
	if dirs := os.Getenv(searchPathEnvVar); dirs != "" {
		r.searchPath = filepath.SplitList(dirs)
	}
	return r
}

// Register adds a driver under name, failing if one is already registered.
func (r *Registry) Register(name string, driver datamodel.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[name]; ok {
		return errors.WrapWithCode(errors.New(name), errors.ErrInvalidArg, "storage plugin already registered")
	}
	r.drivers[name] = driver
	return nil
}

// Get returns the named driver, loading matching shared objects from the
// search path if it isn't already registered.
func (r *Registry) Get(name string) (datamodel.Driver, error) {
	r.mu.Lock()
	if d, ok := r.drivers[name]; ok {
		r.mu.Unlock()
		return d, nil
	}
	r.mu.Unlock()

	if err := r.discover(name); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[name]
	if !ok {
		return nil, errors.WrapWithCode(errors.New(name), errors.ErrPluginMissing, "storage plugin not found")
	}
	return d, nil
}

// discover scans the search path for name.so, then for any .so exporting
// a factory that self-identifies as name.
func (r *Registry) discover(name string) error {
	for _, dir := range r.searchPath {
		candidate := filepath.Join(dir, name+pluginSOExt)
		if _, err := os.Stat(candidate); err == nil {
			if err := r.loadFile(candidate); err != nil {
				return err
			}
			return nil
		}
	}

	for _, dir := range r.searchPath {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), pluginSOExt) {
				continue
			}
			path := filepath.Join(dir, e.Name())
			_ = r.loadFile(path) // best-effort; a plugin irrelevant to name is not an error
		}
	}
	return nil
}

// loadFile opens a shared object once, invokes its factory symbol and
// registers the driver it returns under its self-reported name.
func (r *Registry) loadFile(path string) error {
	r.mu.Lock()
	if r.loaded[path] {
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	p, err := plugin.Open(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPluginMissing, "opening storage plugin %s", path)
	}
	sym, err := p.Lookup(factorySymbol)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPluginMissing, "plugin %s missing %s", path, factorySymbol)
	}
	factory, ok := sym.(func() (string, datamodel.Driver))
	if !ok {
		return errors.WrapWithCode(errors.New(path), errors.ErrPluginMissing, "plugin factory has wrong signature")
	}
	name, driver := factory()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded[path] = true
	if _, exists := r.drivers[name]; !exists {
		r.drivers[name] = driver
	}
	return nil
}

// LoadAll eagerly scans every search-path directory for plugin shared
// objects and registers all that can be loaded.
func (r *Registry) LoadAll() error {
	r.mu.Lock()
	dirs := append([]string(nil), r.searchPath...)
	r.mu.Unlock()

	var firstErr error
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), pluginSOExt) {
				continue
			}
			if err := r.loadFile(filepath.Join(dir, e.Name())); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Unload removes a registered driver by name. It does not unload the
// underlying shared object — the Go plugin package offers no such facility.
func (r *Registry) Unload(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[name]; !ok {
		return errors.WrapWithCode(errors.New(name), errors.ErrNotFound, "storage plugin not registered")
	}
	delete(r.drivers, name)
	return nil
}

// Names returns every currently registered driver name, in no particular
// order (callers needing a stable order should sort the result).
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	return names
}

// InsertSearchPath inserts dir at position n of the search path.
func (r *Registry) InsertSearchPath(n int, dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n > len(r.searchPath) {
		n = len(r.searchPath)
	}
	r.searchPath = append(r.searchPath[:n:n], append([]string{dir}, r.searchPath[n:]...)...)
}

// AppendSearchPath appends dir to the end of the search path.
func (r *Registry) AppendSearchPath(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchPath = append(r.searchPath, dir)
}

// RemoveSearchPath removes the search path entry at index n.
func (r *Registry) RemoveSearchPath(n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n < 0 || n >= len(r.searchPath) {
		return errors.WrapWithCode(errors.New("index out of range"), errors.ErrInvalidArg, "search path index %d", n)
	}
	r.searchPath = append(r.searchPath[:n], r.searchPath[n+1:]...)
	return nil
}

// SearchPaths returns a copy of the current search path list.
func (r *Registry) SearchPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.searchPath...)
}

// Iterator walks a snapshot of the registry's driver names, taken at
// creation time — matching a state of affairs where mutating the registry
// while an iterator is live yields undefined iteration (spec.md §5).
type Iterator struct {
	names []string
	pos   int
}

// IterCreate returns an iterator over the registry's driver names.
func (r *Registry) IterCreate() *Iterator {
	return &Iterator{names: r.Names()}
}

// Next advances the iterator, reporting whether a value was produced.
func (it *Iterator) Next() (string, bool) {
	if it.pos >= len(it.names) {
		return "", false
	}
	name := it.names[it.pos]
	it.pos++
	return name, true
}

// Free releases the iterator. It exists for symmetry with the original's
// iter_free and to give callers an explicit point to signal they're done.
func (it *Iterator) Free() {
	it.names = nil
}
