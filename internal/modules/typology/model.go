package typology

import (
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/lenient"
)

// Typology is a window/door design in a project's catalog with a finite
// quantity to distribute across locations.
type Typology struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	Code           string    `json:"code"`
	Description    string    `json:"description,omitempty"`
	NominalWidth   *float64  `json:"nominal_width"`
	NominalHeight  *float64  `json:"nominal_height"`
	TotalQuantity  int       `json:"total_quantity"`
	AssignedCount  int       `json:"assigned_count"`
	AvailableCount int       `json:"available_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateTypologyRequest holds a manual catalog entry. TotalQuantity accepts a
// number or a string; malformed input becomes 0.
type CreateTypologyRequest struct {
	Code          string           `json:"code"`
	Description   string           `json:"description"`
	NominalWidth  *float64         `json:"nominal_width"`
	NominalHeight *float64         `json:"nominal_height"`
	TotalQuantity lenient.IntValue `json:"total_quantity"`
}
