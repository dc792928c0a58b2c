package assignment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines assignment storage. Assignments live on the locations
// table; typology assigned_count is derived from them.
type Repository interface {
	ListLocationIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
	ListCapacities(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]Capacity, error)
	// Replace clears every assignment of the project, applies pairs and
	// recounts typology usage in one transaction.
	Replace(ctx context.Context, projectID uuid.UUID, pairs []Pair) error
}
