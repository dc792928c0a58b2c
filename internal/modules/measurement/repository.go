package measurement

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines measurement storage.
type Repository interface {
	// ListRecords returns one record per assigned location, measured or not.
	ListRecords(ctx context.Context, projectID uuid.UUID) ([]*Record, error)
	// ReplaceBatch swaps the project's stored measurements for records.
	ReplaceBatch(ctx context.Context, projectID uuid.UUID, records []*Record) error
}
