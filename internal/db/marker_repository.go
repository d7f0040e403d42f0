package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/aispawner/internal/model"
)

// MarkerRepository handles placement marker persistence
type MarkerRepository struct {
	pool *pgxpool.Pool
}

// NewMarkerRepository creates a new marker repository
func NewMarkerRepository(pool *pgxpool.Pool) *MarkerRepository {
	return &MarkerRepository{pool: pool}
}

// LoadAll loads all placement markers ordered by ID
func (r *MarkerRepository) LoadAll(ctx context.Context) ([]*model.Marker, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT marker_id, kind, x, y, z, heading
		FROM placement_markers
		ORDER BY marker_id
	`)
	if err != nil {
		return nil, fmt.Errorf("loading placement markers: %w", err)
	}
	defer rows.Close()

	markers := make([]*model.Marker, 0, 16)
	for rows.Next() {
		var (
			markerID int64
			kind     string
			x, y, z  int32
			heading  int32
		)
		if err := rows.Scan(&markerID, &kind, &x, &y, &z, &heading); err != nil {
			return nil, fmt.Errorf("scanning placement marker row: %w", err)
		}

		loc := model.NewLocation(x, y, z, uint16(heading))
		markers = append(markers, model.NewMarker(markerID, model.MarkerKind(kind), loc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating placement marker rows: %w", err)
	}

	return markers, nil
}

// Create inserts a placement marker and returns its ID
func (r *MarkerRepository) Create(ctx context.Context, kind model.MarkerKind, loc model.Location) (int64, error) {
	var markerID int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO placement_markers (kind, x, y, z, heading)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING marker_id
	`, string(kind), loc.X, loc.Y, loc.Z, int32(loc.Heading)).Scan(&markerID)
	if err != nil {
		return 0, fmt.Errorf("creating %s marker: %w", kind, err)
	}
	return markerID, nil
}
