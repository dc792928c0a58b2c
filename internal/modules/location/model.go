package location

import (
	"time"

	"github.com/google/uuid"
)

// Location is one addressable cell of a project's grid: a position on a floor.
// (ProjectID, Floor, Position) is unique.
type Location struct {
	ID                 uuid.UUID  `json:"id"`
	ProjectID          uuid.UUID  `json:"project_id"`
	Floor              string     `json:"floor"`
	Position           string     `json:"position"`
	AssignedTypologyID *uuid.UUID `json:"assigned_typology_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (l *Location) FloorID() string    { return l.Floor }
func (l *Location) PositionID() string { return l.Position }

// GenerateRequest asks for CountPerFloor positions on every floor named by
// FloorRangeSpec ("1-3,5").
type GenerateRequest struct {
	FloorRangeSpec string `json:"floor_range_spec"`
	CountPerFloor  int    `json:"count_per_floor"`
}

// GenerateResponse reports what a generation call did.
type GenerateResponse struct {
	Created int      `json:"created"`
	Floors  []string `json:"floors"`
	Skipped []string `json:"skipped"`
}

// DeleteFloorResponse reports how many locations were removed.
type DeleteFloorResponse struct {
	Floor   string `json:"floor"`
	Deleted int    `json:"deleted"`
}
