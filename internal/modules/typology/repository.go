package typology

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines typology data storage.
type Repository interface {
	Create(ctx context.Context, t *Typology) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Typology, error)
}
