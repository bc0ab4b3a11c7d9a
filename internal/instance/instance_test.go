package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sintef/dlite-go/internal/entity"
	"github.com/sintef/dlite-go/internal/types"
)

func chemistryEntity(t *testing.T) *entity.Entity {
	t.Helper()
	e, err := entity.Create(
		entity.URIJoin("http://www.sintef.no/calm", "0.1", "Chemistry"),
		"A chemistry composition",
		[]entity.Dimension{
			{Name: "nelements", Description: "Number of chemical elements"},
			{Name: "nphases", Description: "Number of phases"},
		},
		[]entity.Property{
			{Name: "alloy", Type: types.String, ElementSize: 16, Description: "Alloy name"},
			{Name: "elements", Type: types.StringPtr, Dims: []int{0}, Description: "Chemical symbol of each chemical element"},
			{Name: "phases", Type: types.StringPtr, Dims: []int{1}, Description: "Name of each phase"},
			{Name: "X0", Type: types.Float, ElementSize: 8, Dims: []int{0}, Description: "Nominal composition"},
			{Name: "Xp", Type: types.Float, ElementSize: 8, Dims: []int{1, 0}, Description: "Phase composition"},
			{Name: "volfrac", Type: types.Float, ElementSize: 8, Dims: []int{1}, Description: "Volume fraction of phases"},
			{Name: "rpart", Type: types.Float, ElementSize: 8, Dims: []int{1}, Description: "Particle radius"},
			{Name: "atvol", Type: types.Float, ElementSize: 8, Dims: []int{1}, Description: "Atomic volume"},
		},
	)
	require.NoError(t, err)
	return e
}

// TestChemistryRoundTrip sets every property the chemistry entity declares
// (a scalar fixed-size string, one-dimensional stringPtr and float
// properties, and a two-dimensional float property), then reads back the
// string, one stringPtr, one one-dimensional float and a dimension size.
func TestChemistryRoundTrip(t *testing.T) {
	meta := chemistryEntity(t)
	inst, err := Create(meta, []uint64{2, 1}, "")
	require.NoError(t, err)

	require.NoError(t, inst.SetPropertyByName("alloy", "Al-Si"))
	require.NoError(t, inst.SetPropertyByName("elements", []string{"Al", "Si"}))
	require.NoError(t, inst.SetPropertyByName("phases", []string{"liquid"}))
	require.NoError(t, inst.SetPropertyByName("X0", []float64{0.85, 0.15}))
	require.NoError(t, inst.SetPropertyByName("Xp", []float64{0.85, 0.15}))
	require.NoError(t, inst.SetPropertyByName("volfrac", []float64{1.0}))
	require.NoError(t, inst.SetPropertyByName("rpart", []float64{1e-6}))
	require.NoError(t, inst.SetPropertyByName("atvol", []float64{1.66e-29}))

	alloy, err := inst.GetPropertyByName("alloy")
	require.NoError(t, err)
	assert.Equal(t, "Al-Si", alloy)

	elements, err := inst.GetPropertyByName("elements")
	require.NoError(t, err)
	assert.Equal(t, []string{"Al", "Si"}, elements)

	x0, err := inst.GetPropertyByName("X0")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.85, 0.15}, x0)

	nel, err := inst.GetDimensionSizeByName("nelements")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), nel)
}

func TestCreateDimensionCountMismatch(t *testing.T) {
	meta := chemistryEntity(t)
	_, err := Create(meta, []uint64{1}, "")
	assert.Error(t, err)
}

// TestCreateFreeRefcountInvariant verifies an instance's meta refcount rises
// by exactly one on Create and falls by exactly one on Free.
func TestCreateFreeRefcountInvariant(t *testing.T) {
	meta := chemistryEntity(t)
	before := meta.Refcount()

	inst, err := Create(meta, []uint64{1, 1}, "")
	require.NoError(t, err)
	assert.Equal(t, before+1, meta.Refcount())

	require.NoError(t, Free(inst))
	assert.Equal(t, before, meta.Refcount())
}

func TestDeriveUUIDFromID(t *testing.T) {
	meta := chemistryEntity(t)
	inst, err := Create(meta, []uint64{0, 0}, "http://example.org/instances/foo")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/instances/foo", inst.URI)
	assert.Len(t, inst.UUID, 36)
}

func TestDeriveUUIDRandomWhenEmpty(t *testing.T) {
	meta := chemistryEntity(t)
	a, err := Create(meta, []uint64{0, 0}, "")
	require.NoError(t, err)
	b, err := Create(meta, []uint64{0, 0}, "")
	require.NoError(t, err)
	assert.NotEqual(t, a.UUID, b.UUID)
}

func TestScalarFloatByteRoundTrip(t *testing.T) {
	meta, err := entity.Create("", "", nil, []entity.Property{
		{Name: "temperature", Type: types.Float, ElementSize: 8},
	})
	require.NoError(t, err)

	inst, err := Create(meta, nil, "")
	require.NoError(t, err)

	require.NoError(t, inst.SetPropertyByName("temperature", 273.15))
	v, err := inst.GetPropertyByName("temperature")
	require.NoError(t, err)
	assert.InDelta(t, 273.15, v.(float64), 1e-9)
}

func TestGetDimensionSizeByIndexOutOfRange(t *testing.T) {
	meta := chemistryEntity(t)
	inst, err := Create(meta, []uint64{1, 1}, "")
	require.NoError(t, err)

	_, err = inst.GetDimensionSizeByIndex(5)
	assert.Error(t, err)
}

func TestSetPropertyTypeMismatch(t *testing.T) {
	meta := chemistryEntity(t)
	inst, err := Create(meta, []uint64{1, 1}, "")
	require.NoError(t, err)

	err = inst.SetPropertyByName("X0", "not a float slice")
	assert.Error(t, err)
}

func TestSetPropertyShapeMismatch(t *testing.T) {
	meta := chemistryEntity(t)
	inst, err := Create(meta, []uint64{2, 1}, "")
	require.NoError(t, err)

	err = inst.SetPropertyByName("X0", []float64{1})
	assert.Error(t, err)
}
