package workflow

import (
	"context"

	"github.com/google/uuid"
)

// Location is a grid cell. A nil AssignedTypologyID means unassigned.
type Location struct {
	ID                 uuid.UUID  `json:"id"`
	Floor              string     `json:"floor"`
	Position           string     `json:"position"`
	AssignedTypologyID *uuid.UUID `json:"assigned_typology_id"`
}

func (l Location) FloorID() string    { return l.Floor }
func (l Location) PositionID() string { return l.Position }

// Address renders "FLOOR/POSITION".
func (l Location) Address() string { return l.Floor + "/" + l.Position }

// Typology is a catalog entry with a finite quantity.
type Typology struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description,omitempty"`
	NominalWidth  *float64  `json:"nominal_width"`
	NominalHeight *float64  `json:"nominal_height"`
	TotalQuantity int       `json:"total_quantity"`
	AssignedCount int       `json:"assigned_count"`
}

// AvailableCount is TotalQuantity minus the server-side AssignedCount.
func (t Typology) AvailableCount() int { return t.TotalQuantity - t.AssignedCount }

// GenerateRequest asks for CountPerFloor positions on every floor in RangeSpec.
type GenerateRequest struct {
	RangeSpec     string `json:"floor_range_spec"`
	CountPerFloor int    `json:"count_per_floor"`
}

// AssignmentPair is one entry of an assignment commit.
type AssignmentPair struct {
	LocationID uuid.UUID `json:"location_id"`
	TypologyID uuid.UUID `json:"typology_id"`
}

// MeasurementRecord is the measured state of one assigned location. Floor,
// Position, TypologyCode and the nominal sizes are context from the store.
type MeasurementRecord struct {
	LocationID     uuid.UUID `json:"location_id"`
	TypologyID     uuid.UUID `json:"typology_id"`
	Floor          string    `json:"floor"`
	Position       string    `json:"position"`
	TypologyCode   string    `json:"typology_code"`
	NominalWidth   *float64  `json:"nominal_width"`
	NominalHeight  *float64  `json:"nominal_height"`
	MeasuredWidth  *float64  `json:"measured_width"`
	MeasuredHeight *float64  `json:"measured_height"`
	Notes          string    `json:"notes"`
}

func (r MeasurementRecord) FloorID() string    { return r.Floor }
func (r MeasurementRecord) PositionID() string { return r.Position }

// TypologyGroup is one entry of the by-typology report view.
type TypologyGroup struct {
	TypologyID    uuid.UUID           `json:"typology_id"`
	Code          string              `json:"code"`
	NominalWidth  *float64            `json:"nominal_width"`
	NominalHeight *float64            `json:"nominal_height"`
	Locations     []MeasurementRecord `json:"locations"`
}

// Report is the read-only measurement summary of a project.
type Report struct {
	ByLocation []MeasurementRecord `json:"by_location"`
	ByTypology []TypologyGroup     `json:"by_typology"`
}

// Backend is the remote store. Every method is one request/response call;
// failures carry the store's message verbatim in Error().
type Backend interface {
	ListTypologies(ctx context.Context, projectID uuid.UUID) ([]Typology, error)
	ListLocations(ctx context.Context, projectID uuid.UUID) ([]Location, error)
	GenerateLocations(ctx context.Context, projectID uuid.UUID, reqs []GenerateRequest) error
	DeleteFloor(ctx context.Context, projectID uuid.UUID, floor string) error
	SaveAssignments(ctx context.Context, projectID uuid.UUID, pairs []AssignmentPair) error
	ListMeasurements(ctx context.Context, projectID uuid.UUID) ([]MeasurementRecord, error)
	SaveMeasurements(ctx context.Context, projectID uuid.UUID, recs []MeasurementRecord) error
	FetchReport(ctx context.Context, projectID uuid.UUID) (*Report, error)
}
