package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for world entities.
//
// ID ranges:
//
//	0x00000000 - 0x1FFFFFFF: Reserved (0 = invalid)
//	0x20000000 - 0x2FFFFFFF: Spawned characters
//	0x40000000 - 0x4FFFFFFF: Placement markers
type ObjectIDGenerator struct {
	nextCharacterID atomic.Uint32
	nextMarkerID    atomic.Uint32
}

const (
	characterIDBase uint32 = 0x20000000
	markerIDBase    uint32 = 0x40000000
)

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextCharacterID.Store(characterIDBase)
	gen.nextMarkerID.Store(markerIDBase)
	return gen
}

// NextCharacterID generates next unique character object ID.
func (g *ObjectIDGenerator) NextCharacterID() uint32 {
	return g.nextCharacterID.Add(1)
}

// NextMarkerID generates next unique marker object ID.
func (g *ObjectIDGenerator) NextMarkerID() uint32 {
	return g.nextMarkerID.Add(1)
}

// IsCharacterID reports whether id belongs to the character range.
func IsCharacterID(id uint32) bool {
	return id > characterIDBase && id < characterIDBase+0x10000000
}
