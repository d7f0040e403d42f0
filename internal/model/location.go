package model

import "fmt"

// Location is a placement transform: world coordinates plus heading.
type Location struct {
	X       int32
	Y       int32
	Z       int32
	Heading uint16 // 0-65535
}

// NewLocation creates location at the given coordinates
func NewLocation(x, y, z int32, heading uint16) Location {
	return Location{X: x, Y: y, Z: z, Heading: heading}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d, %d; %d)", l.X, l.Y, l.Z, l.Heading)
}
