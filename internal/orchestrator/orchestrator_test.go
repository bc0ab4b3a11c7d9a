package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/sintef/dlite-go/internal/entity"
	"github.com/sintef/dlite-go/internal/instance"
	"github.com/sintef/dlite-go/internal/types"
	mocks_datamodel "github.com/sintef/dlite-go/test/mocks/datamodel"
)

func testEntity(t *testing.T) *entity.Entity {
	t.Helper()
	e, err := entity.Create(
		entity.URIJoin("http://www.sintef.no/calm", "0.1", "Chemistry"),
		"A chemistry composition",
		[]entity.Dimension{
			{Name: "nelements"},
			{Name: "nphases"},
		},
		[]entity.Property{
			{Name: "alloy", Type: types.String, ElementSize: 16},
			{Name: "elements", Type: types.StringPtr, Dims: []int{0}},
			{Name: "X0", Type: types.Float, ElementSize: 8, Dims: []int{0}},
		},
	)
	require.NoError(t, err)
	return e
}

func TestLoadRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	meta := testEntity(t)
	h := mocks_datamodel.NewMockHandle(ctrl)

	h.EXPECT().Close().Return(nil)
	h.EXPECT().GetMetadata().Return(meta.URI, nil)
	h.EXPECT().GetDimensionSize("nelements").Return(2, nil)
	h.EXPECT().GetDimensionSize("nphases").Return(1, nil)

	alloyBytes := make([]byte, 16)
	copy(alloyBytes, "Al-Si")
	h.EXPECT().GetProperty("alloy", types.String, 16, []int{}).Return(alloyBytes, nil)
	elementsRaw := append([]byte("Al\x00"), []byte("Si\x00")...)
	h.EXPECT().GetProperty("elements", types.StringPtr, 0, []int{2}).Return(elementsRaw, nil)
	x0raw, err := instance.EncodeFlat(types.Float, 8, 2, []float64{0.85, 0.15})
	require.NoError(t, err)
	h.EXPECT().GetProperty("X0", types.Float, 8, []int{2}).Return(x0raw, nil)

	driver := mocks_datamodel.NewMockDriver(ctrl)
	driver.EXPECT().DataModel(gomock.Any(), gomock.Any(), gomock.Any()).Return(h, nil)

	inst, err := Load(context.Background(), driver, nil, meta, "")
	require.NoError(t, err)

	alloy, err := inst.GetPropertyByName("alloy")
	require.NoError(t, err)
	assert.Equal(t, "Al-Si", alloy)

	elements, err := inst.GetPropertyByName("elements")
	require.NoError(t, err)
	assert.Equal(t, []string{"Al", "Si"}, elements)

	x0, err := inst.GetPropertyByName("X0")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.85, 0.15}, x0)
}

func TestLoadMetadataMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	meta := testEntity(t)
	h := mocks_datamodel.NewMockHandle(ctrl)
	h.EXPECT().Close().Return(nil)
	h.EXPECT().GetMetadata().Return("http://example.org/0.1/Other", nil)

	driver := mocks_datamodel.NewMockDriver(ctrl)
	driver.EXPECT().DataModel(gomock.Any(), gomock.Any(), gomock.Any()).Return(h, nil)

	_, err := Load(context.Background(), driver, nil, meta, "")
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	meta := testEntity(t)
	inst, err := instance.Create(meta, []uint64{2, 1}, "")
	require.NoError(t, err)
	require.NoError(t, inst.SetPropertyByName("alloy", "Al-Si"))
	require.NoError(t, inst.SetPropertyByName("elements", []string{"Al", "Si"}))
	require.NoError(t, inst.SetPropertyByName("X0", []float64{0.85, 0.15}))

	h := mocks_datamodel.NewMockHandle(ctrl)
	h.EXPECT().Close().Return(nil)
	h.EXPECT().SetMetadata(meta.URI).Return(nil)
	h.EXPECT().SetDimensionSize("nelements", 2).Return(nil)
	h.EXPECT().SetDimensionSize("nphases", 1).Return(nil)
	h.EXPECT().SetProperty("alloy", types.String, 16, []int{}, gomock.Any()).Return(nil)
	h.EXPECT().SetProperty("elements", types.StringPtr, 0, []int{2}, gomock.Any()).Return(nil)
	h.EXPECT().SetProperty("X0", types.Float, 8, []int{2}, gomock.Any()).Return(nil)

	driver := mocks_datamodel.NewMockDriver(ctrl)
	driver.EXPECT().DataModel(gomock.Any(), gomock.Any(), gomock.Any()).Return(h, nil)

	require.NoError(t, Save(context.Background(), driver, nil, inst))
}

// readOnlyHandle implements only datamodel.Handle's required reads, the way
// a backend serving a read-only store would, leaving the writable-only
// SetMetadata/SetDimensionSize/SetProperty trio (and the rest of
// datamodel.OptionalBackend) unimplemented.
type readOnlyHandle struct{}

func (readOnlyHandle) Close() error                                         { return nil }
func (readOnlyHandle) GetMetadata() (string, error)                         { return "", nil }
func (readOnlyHandle) GetDimensionSize(string) (int, error)                 { return 0, nil }
func (readOnlyHandle) GetProperty(string, types.Kind, int, []int) ([]byte, error) {
	return nil, nil
}

func TestSaveRejectsReadOnlyBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	meta := testEntity(t)
	inst, err := instance.Create(meta, []uint64{2, 1}, "")
	require.NoError(t, err)

	driver := mocks_datamodel.NewMockDriver(ctrl)
	driver.EXPECT().DataModel(gomock.Any(), gomock.Any(), gomock.Any()).Return(readOnlyHandle{}, nil)

	err = Save(context.Background(), driver, nil, inst)
	assert.Error(t, err)
}
