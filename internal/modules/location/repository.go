package location

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines location data storage.
type Repository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Location, error)
	ListFloors(ctx context.Context, projectID uuid.UUID) ([]string, error)
	// CreateBatch inserts locations, ignoring any (project, floor, position)
	// that already exists, and returns how many rows were inserted.
	CreateBatch(ctx context.Context, projectID uuid.UUID, locs []*Location) (int, error)
	// DeleteByFloor removes a floor's locations and recounts typology usage.
	DeleteByFloor(ctx context.Context, projectID uuid.UUID, floor string) (int, error)
}
