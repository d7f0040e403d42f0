package model

// WorldObject is anything registered in a world region.
// Placed objects never move, so the fields are fixed at creation.
type WorldObject struct {
	objectID uint32
	name     string
	location Location
}

// NewWorldObject creates world object
func NewWorldObject(objectID uint32, name string, loc Location) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		location: loc,
	}
}

// ObjectID returns unique object ID
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name returns display name
func (w *WorldObject) Name() string {
	return w.name
}

// Location returns where the object was placed
func (w *WorldObject) Location() Location {
	return w.location
}
