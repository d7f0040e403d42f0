package world

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aispawner/internal/model"
)

func testTemplate() *model.CharacterTemplate {
	return model.NewCharacterTemplate(1000, "Grunt")
}

func TestInstance_Singleton(t *testing.T) {
	if Instance() != Instance() {
		t.Error("Instance() should return same instance (singleton)")
	}
}

func TestWorld_GetRegion(t *testing.T) {
	w := New()

	region := w.GetRegion(0, 0)
	require.NotNil(t, region)
	assert.Equal(t, int32(OffsetX), region.RX())
	assert.Equal(t, int32(OffsetY), region.RY())

	assert.Nil(t, w.GetRegion(WorldXMax+10000, WorldYMax+10000))
	assert.Equal(t, RegionsX*RegionsY, w.RegionCount())
}

func TestWorld_FindMarkers(t *testing.T) {
	w := New()

	// inserted out of order on purpose
	require.NoError(t, w.AddMarker(model.NewMarker(3, model.MarkerPlayerStart, model.NewLocation(300, 0, 0, 0))))
	require.NoError(t, w.AddMarker(model.NewMarker(1, model.MarkerPlayerStart, model.NewLocation(100, 0, 0, 0))))
	require.NoError(t, w.AddMarker(model.NewMarker(2, "patrol_point", model.NewLocation(200, 0, 0, 0))))

	locs := w.FindMarkers(model.MarkerPlayerStart)
	require.Len(t, locs, 2)
	assert.Equal(t, int32(100), locs[0].X)
	assert.Equal(t, int32(300), locs[1].X)

	assert.Empty(t, w.FindMarkers("unknown"))
	assert.Equal(t, 3, w.MarkerCount())
}

func TestWorld_AddMarker_InvalidLocation(t *testing.T) {
	w := New()

	err := w.AddMarker(model.NewMarker(1, model.MarkerPlayerStart, model.NewLocation(WorldXMax+1, 0, 0, 0)))
	require.ErrorIs(t, err, ErrInvalidLocation)
	assert.Empty(t, w.FindMarkers(model.MarkerPlayerStart))
}

func TestWorld_SpawnDestroyCharacter(t *testing.T) {
	w := New()
	loc := model.NewLocation(17000, 170000, -3500, 0)

	c, err := w.SpawnCharacter(testTemplate(), loc)
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.True(t, IsCharacterID(c.ObjectID()))
	assert.Equal(t, 1, w.CharacterCount())
	assert.Equal(t, 1, w.GetRegion(loc.X, loc.Y).ObjectCount())

	require.NoError(t, w.DestroyCharacter(c.ObjectID()))
	assert.Equal(t, 0, w.CharacterCount())
	assert.Equal(t, 0, w.GetRegion(loc.X, loc.Y).ObjectCount())

	err = w.DestroyCharacter(c.ObjectID())
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestWorld_SpawnCharacter_Errors(t *testing.T) {
	w := New()

	_, err := w.SpawnCharacter(testTemplate(), model.NewLocation(WorldXMin-1, 0, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = w.SpawnCharacter(nil, model.Location{})
	assert.Error(t, err)

	assert.Equal(t, 0, w.CharacterCount())
}

func TestWorld_DestroyCharacter_RejectsMarker(t *testing.T) {
	w := New()
	require.NoError(t, w.AddMarker(model.NewMarker(1, model.MarkerPlayerStart, model.Location{})))

	err := w.DestroyCharacter(markerIDBase + 1)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, 1, w.MarkerCount())
}

func TestWorld_ConcurrentSpawn(t *testing.T) {
	w := New()
	tmpl := testTemplate()

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			c, err := w.SpawnCharacter(tmpl, model.Location{})
			if err != nil {
				t.Errorf("SpawnCharacter() error = %v", err)
				return
			}
			_ = w.DestroyCharacter(c.ObjectID())
		})
	}
	wg.Wait()

	assert.Equal(t, 0, w.CharacterCount())
}
