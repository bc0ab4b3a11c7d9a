package jsonbackend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sintef/dlite-go/internal/datamodel"
	"github.com/sintef/dlite-go/internal/jsonvalue"
	"github.com/sintef/dlite-go/internal/types"
)

func openTestStorage(t *testing.T) (datamodel.Driver, datamodel.Storage) {
	t.Helper()
	dir := t.TempDir()
	var drv Driver
	st, err := drv.Open(context.Background(), dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return drv, st
}

func TestSaveLoadInstanceRoundTrip(t *testing.T) {
	drv, st := openTestStorage(t)
	uuid := "6c6e2a1a-0c3a-4a1e-9a4a-1a2b3c4d5e6f"

	h, err := drv.DataModel(context.Background(), st, uuid)
	require.NoError(t, err)

	require.NoError(t, h.SetMetadata("http://example.org/0.1/Chemistry"))
	require.NoError(t, h.SetDimensionSize("nelements", 2))

	alloyVal, err := jsonvalue.Infer("Al-Si", jsonvalue.DefaultNdimMax)
	require.NoError(t, err)
	alloyRaw, err := encodeFlatBytes(types.String, 16, 1, alloyVal)
	require.NoError(t, err)
	require.NoError(t, h.SetProperty("alloy", types.String, 16, []int{}, alloyRaw))

	elementsRaw, err := datamodel.EncodeStringPtr(2, []string{"Al", "Si"})
	require.NoError(t, err)
	require.NoError(t, h.SetProperty("elements", types.StringPtr, 0, []int{2}, elementsRaw))

	require.NoError(t, h.Close())

	h2, err := drv.DataModel(context.Background(), st, uuid)
	require.NoError(t, err)
	defer h2.Close()

	meta, err := h2.GetMetadata()
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/0.1/Chemistry", meta)

	size, err := h2.GetDimensionSize("nelements")
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	alloyBuf, err := h2.GetProperty("alloy", types.String, 16, []int{})
	require.NoError(t, err)
	assert.Equal(t, "Al-Si", trimNUL(alloyBuf))

	elementsBuf, err := h2.GetProperty("elements", types.StringPtr, 0, []int{2})
	require.NoError(t, err)
	v, err := datamodel.DecodeStringPtr(false, elementsBuf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Al", "Si"}, v)

	has, err := h2.HasProperty("elements")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = h2.HasProperty("missing")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetUUIDsListsSiblingFiles(t *testing.T) {
	drv, st := openTestStorage(t)
	for _, id := range []string{"a", "b", "c"} {
		h, err := drv.DataModel(context.Background(), st, id)
		require.NoError(t, err)
		require.NoError(t, h.SetMetadata("http://example.org/0.1/X"))
		require.NoError(t, h.Close())
	}

	h, err := drv.DataModel(context.Background(), st, "a")
	require.NoError(t, err)
	defer h.Close()

	uuids, err := h.GetUUIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, uuids)
}

func TestSetDimensionSizeRejectedOnReadOnlyStorage(t *testing.T) {
	dir := t.TempDir()
	var drv Driver

	st, err := drv.Open(context.Background(), dir, datamodel.Options{"writable": "true"})
	require.NoError(t, err)
	h, err := drv.DataModel(context.Background(), st, "ro-test")
	require.NoError(t, err)
	require.NoError(t, h.SetMetadata("http://example.org/0.1/X"))
	require.NoError(t, h.Close())

	stRO, err := drv.Open(context.Background(), dir, datamodel.Options{"writable": "false"})
	require.NoError(t, err)
	hRO, err := drv.DataModel(context.Background(), stRO, "ro-test")
	require.NoError(t, err)
	defer hRO.Close()

	err = hRO.SetDimensionSize("n", 1)
	assert.Error(t, err)
}

func TestGetSetEntity(t *testing.T) {
	drv, st := openTestStorage(t)
	h, err := drv.DataModel(context.Background(), st, "schema-uuid")
	require.NoError(t, err)

	entityJSON := []byte(`{
		"name": "Chemistry", "version": "0.1", "namespace": "http://example.org",
		"dimensions": [{"name": "nelements"}],
		"properties": [{"name": "X0", "type": "float", "dims": ["nelements"]}]
	}`)
	require.NoError(t, h.SetEntity(entityJSON))
	require.NoError(t, h.Close())

	h2, err := drv.DataModel(context.Background(), st, "schema-uuid")
	require.NoError(t, err)
	defer h2.Close()

	got, err := h2.GetEntity()
	require.NoError(t, err)
	assert.Contains(t, string(got), "Chemistry")
}

func TestSetEntityRejectsInvalidDimensionReference(t *testing.T) {
	_, st := openTestStorage(t)
	drv := Driver{}
	h, err := drv.DataModel(context.Background(), st, "bad-entity")
	require.NoError(t, err)
	defer h.Close()

	entityJSON := []byte(`{
		"dimensions": [{"name": "nelements"}],
		"properties": [{"name": "X0", "type": "float", "dims": ["unknown"]}]
	}`)
	err = h.SetEntity(entityJSON)
	assert.Error(t, err)
}

func TestOpenReadOnlyMissingDirectory(t *testing.T) {
	var drv Driver
	_, err := drv.Open(context.Background(), filepath.Join(t.TempDir(), "missing"), datamodel.Options{"writable": "false"})
	assert.Error(t, err)
}

func trimNUL(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

