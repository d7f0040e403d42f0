package model

// MarkerKind classifies placement markers.
type MarkerKind string

// MarkerPlayerStart marks locations where characters may enter the world.
const MarkerPlayerStart MarkerKind = "player_start"

// Marker: объект мира, отмечающий допустимую точку появления.
type Marker struct {
	markerID int64
	kind     MarkerKind
	location Location
}

// NewMarker создаёт placement marker.
func NewMarker(markerID int64, kind MarkerKind, loc Location) *Marker {
	return &Marker{
		markerID: markerID,
		kind:     kind,
		location: loc,
	}
}

// MarkerID возвращает ID маркера.
func (m *Marker) MarkerID() int64 {
	return m.markerID
}

// Kind возвращает тип маркера.
func (m *Marker) Kind() MarkerKind {
	return m.kind
}

// Location возвращает трансформ маркера.
func (m *Marker) Location() Location {
	return m.location
}
