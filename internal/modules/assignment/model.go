package assignment

import "github.com/google/uuid"

// Pair assigns one location to one typology.
type Pair struct {
	LocationID uuid.UUID `json:"location_id"`
	TypologyID uuid.UUID `json:"typology_id"`
}

// Capacity is the part of a typology the batch check needs.
type Capacity struct {
	Code          string
	TotalQuantity int
}

// ReplaceResponse reports the committed batch size.
type ReplaceResponse struct {
	Assigned int `json:"assigned"`
}
