package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sintef/dlite-go/internal/datamodel"
)

type fakeDriver struct{}

func (fakeDriver) Open(ctx context.Context, uri string, options datamodel.Options) (datamodel.Storage, error) {
	return nil, nil
}

func (fakeDriver) DataModel(ctx context.Context, s datamodel.Storage, uuid string) (datamodel.Handle, error) {
	return nil, nil
}

func newTestRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]datamodel.Driver),
		loaded:  make(map[string]bool),
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Register("fake", fakeDriver{}))

	d, err := r.Get("fake")
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Register("fake", fakeDriver{}))
	err := r.Register("fake", fakeDriver{})
	assert.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Get("missing")
	assert.Error(t, err)
}

func TestUnload(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Register("fake", fakeDriver{}))
	require.NoError(t, r.Unload("fake"))
	_, err := r.Get("fake")
	assert.Error(t, err)
}

func TestUnloadMissing(t *testing.T) {
	r := newTestRegistry()
	assert.Error(t, r.Unload("missing"))
}

func TestSearchPathManipulation(t *testing.T) {
	r := newTestRegistry()
	r.AppendSearchPath("/a")
	r.AppendSearchPath("/c")
	r.InsertSearchPath(1, "/b")
	assert.Equal(t, []string{"/a", "/b", "/c"}, r.SearchPaths())

	require.NoError(t, r.RemoveSearchPath(1))
	assert.Equal(t, []string{"/a", "/c"}, r.SearchPaths())

	assert.Error(t, r.RemoveSearchPath(5))
}

func TestIterator(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Register("a", fakeDriver{}))
	require.NoError(t, r.Register("b", fakeDriver{}))

	it := r.IterCreate()
	seen := map[string]bool{}
	for {
		name, ok := it.Next()
		if !ok {
			break
		}
		seen[name] = true
	}
	it.Free()
	assert.Equal(t, map[string]bool{"a": true, "b": true}, seen)
}

func TestDefaultSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
