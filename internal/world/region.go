package world

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/aispawner/internal/model"
)

// Region represents a single world region (2048×2048 game units)
type Region struct {
	rx, ry int32

	objects sync.Map // map[uint32]*model.WorldObject
	count   atomic.Int32
}

// NewRegion creates a new region
func NewRegion(rx, ry int32) *Region {
	return &Region{rx: rx, ry: ry}
}

// RX returns region X index
func (r *Region) RX() int32 {
	return r.rx
}

// RY returns region Y index
func (r *Region) RY() int32 {
	return r.ry
}

// AddObject adds object to region (concurrent-safe)
func (r *Region) AddObject(obj *model.WorldObject) {
	if _, loaded := r.objects.LoadOrStore(obj.ObjectID(), obj); !loaded {
		r.count.Add(1)
	}
}

// RemoveObject removes object from region (concurrent-safe)
func (r *Region) RemoveObject(objectID uint32) {
	if _, ok := r.objects.LoadAndDelete(objectID); ok {
		r.count.Add(-1)
	}
}

// ObjectCount returns number of objects in region
func (r *Region) ObjectCount() int {
	return int(r.count.Load())
}

// ForEachObject iterates over region objects until fn returns false
func (r *Region) ForEachObject(fn func(*model.WorldObject) bool) {
	r.objects.Range(func(_, value any) bool {
		return fn(value.(*model.WorldObject))
	})
}
