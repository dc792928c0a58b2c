package measurement

import "github.com/google/uuid"

// Record is the as-built measurement of one assigned location. Floor,
// Position, TypologyCode and the nominal dimensions are denormalised for
// display and ignored on write.
type Record struct {
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
	// Stored is true when a measurement row exists for the location.
	Stored bool `json:"-"`
}

func (r *Record) FloorID() string    { return r.Floor }
func (r *Record) PositionID() string { return r.Position }

// ReplaceResponse reports the committed batch size.
type ReplaceResponse struct {
	Saved int `json:"saved"`
}

// TypologyGroup lists the measured locations of one typology.
type TypologyGroup struct {
	TypologyID    uuid.UUID `json:"typology_id"`
	Code          string    `json:"code"`
	NominalWidth  *float64  `json:"nominal_width"`
	NominalHeight *float64  `json:"nominal_height"`
	Locations     []*Record `json:"locations"`
}

// Report holds the two read-only views of a project's measurements.
type Report struct {
	ByLocation []*Record        `json:"by_location"`
	ByTypology []*TypologyGroup `json:"by_typology"`
}
