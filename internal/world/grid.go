package world

// Region grid constants. Every region covers 2^ShiftBy units on each axis.
const (
	ShiftBy = 11

	WorldXMin = -131072
	WorldYMin = -262144
	WorldXMax = 196608
	WorldYMax = 229376

	// OffsetX = abs(WorldXMin >> ShiftBy), OffsetY = abs(WorldYMin >> ShiftBy)
	OffsetX = 64
	OffsetY = 128

	RegionsX = 160
	RegionsY = 241

	RegionSize = 1 << ShiftBy
)

// CoordToRegionIndex converts world coordinate to region index
func CoordToRegionIndex(x, y int32) (rx, ry int32) {
	return (x >> ShiftBy) + OffsetX, (y >> ShiftBy) + OffsetY
}

// IsValidRegionIndex checks if region index is within valid bounds
func IsValidRegionIndex(rx, ry int32) bool {
	return rx >= 0 && rx < RegionsX && ry >= 0 && ry < RegionsY
}

// IsValidLocation reports whether (x, y) falls inside the region grid.
func IsValidLocation(x, y int32) bool {
	if x < WorldXMin || x >= WorldXMax || y < WorldYMin || y >= WorldYMax {
		return false
	}
	return IsValidRegionIndex(CoordToRegionIndex(x, y))
}
