package world

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/aispawner/internal/model"
)

var (
	// ErrInvalidLocation is returned when coordinates fall outside the region grid.
	ErrInvalidLocation = errors.New("location outside world grid")
	// ErrObjectNotFound is returned when an object is not registered in the world.
	ErrObjectNotFound = errors.New("object not found")
)

// World is the registry of placement markers and spawned characters,
// indexed by a 2D region grid.
type World struct {
	regions [][]*Region // [RegionsX][RegionsY]
	ids     *ObjectIDGenerator

	objects        sync.Map // map[uint32]*model.WorldObject
	characters     sync.Map // map[uint32]*model.Character
	characterCount atomic.Int32

	mu      sync.RWMutex
	markers []*model.Marker // sorted by markerID
}

var (
	instance *World
	once     sync.Once
)

// Instance returns the process-wide World.
func Instance() *World {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New creates an empty world with its own region grid and ID generator.
func New() *World {
	w := &World{ids: NewObjectIDGenerator()}

	w.regions = make([][]*Region, RegionsX)
	for rx := range RegionsX {
		w.regions[rx] = make([]*Region, RegionsY)
		for ry := range RegionsY {
			w.regions[rx][ry] = NewRegion(int32(rx), int32(ry))
		}
	}
	return w
}

// GetRegion returns region at world coordinates (x, y)
// Returns nil if coordinates are out of bounds
func (w *World) GetRegion(x, y int32) *Region {
	if !IsValidLocation(x, y) {
		return nil
	}
	rx, ry := CoordToRegionIndex(x, y)
	return w.regions[rx][ry]
}

// RegionCount returns total number of regions
func (w *World) RegionCount() int {
	return RegionsX * RegionsY
}

func (w *World) addObject(obj *model.WorldObject) error {
	loc := obj.Location()
	region := w.GetRegion(loc.X, loc.Y)
	if region == nil {
		return fmt.Errorf("object %d at (%d, %d): %w", obj.ObjectID(), loc.X, loc.Y, ErrInvalidLocation)
	}

	w.objects.Store(obj.ObjectID(), obj)
	region.AddObject(obj)
	return nil
}

func (w *World) removeObject(objectID uint32) bool {
	value, ok := w.objects.LoadAndDelete(objectID)
	if !ok {
		return false
	}

	obj := value.(*model.WorldObject)
	loc := obj.Location()
	if region := w.GetRegion(loc.X, loc.Y); region != nil {
		region.RemoveObject(objectID)
	}
	return true
}

// AddMarker places a marker into the world.
func (w *World) AddMarker(marker *model.Marker) error {
	obj := model.NewWorldObject(w.ids.NextMarkerID(), string(marker.Kind()), marker.Location())
	if err := w.addObject(obj); err != nil {
		return fmt.Errorf("adding marker %d: %w", marker.MarkerID(), err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	i, _ := slices.BinarySearchFunc(w.markers, marker.MarkerID(), func(m *model.Marker, id int64) int {
		return cmp.Compare(m.MarkerID(), id)
	})
	w.markers = slices.Insert(w.markers, i, marker)
	return nil
}

// FindMarkers returns locations of all markers of the given kind, ordered by marker ID.
func (w *World) FindMarkers(kind model.MarkerKind) []model.Location {
	w.mu.RLock()
	defer w.mu.RUnlock()

	locs := make([]model.Location, 0, len(w.markers))
	for _, m := range w.markers {
		if m.Kind() == kind {
			locs = append(locs, m.Location())
		}
	}
	return locs
}

// MarkerCount returns number of markers of all kinds
func (w *World) MarkerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.markers)
}

// SpawnCharacter creates a character from template and adds it to the world.
func (w *World) SpawnCharacter(template *model.CharacterTemplate, loc model.Location) (*model.Character, error) {
	if template == nil {
		return nil, errors.New("spawning character: nil template")
	}

	c := model.NewCharacter(w.ids.NextCharacterID(), template, loc)
	if err := w.addObject(c.WorldObject); err != nil {
		return nil, fmt.Errorf("spawning %s: %w", template.Name(), err)
	}

	w.characters.Store(c.ObjectID(), c)
	w.characterCount.Add(1)
	return c, nil
}

// DestroyCharacter removes a character from the world.
func (w *World) DestroyCharacter(objectID uint32) error {
	if !IsCharacterID(objectID) {
		return fmt.Errorf("destroying object %d: not a character: %w", objectID, ErrObjectNotFound)
	}
	if _, ok := w.characters.LoadAndDelete(objectID); !ok {
		return fmt.Errorf("destroying character %d: %w", objectID, ErrObjectNotFound)
	}

	w.removeObject(objectID)
	w.characterCount.Add(-1)
	return nil
}

// CharacterCount returns number of spawned characters (O(1) cached count)
func (w *World) CharacterCount() int {
	return int(w.characterCount.Load())
}
