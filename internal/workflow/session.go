package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/natural"
)

// Session is the single-owner, project-scoped cache of locations and
// typologies. It is only ever replaced wholesale from the store.
type Session struct {
	ProjectID uuid.UUID

	backend    Backend
	logger     *slog.Logger
	locations  []Location
	typologies []Typology
}

// NewSession creates an empty session; call Refresh before use.
func NewSession(projectID uuid.UUID, backend Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{ProjectID: projectID, backend: backend, logger: logger.With("project_id", projectID)}
}

// Backend returns the store the session reads from.
func (s *Session) Backend() Backend { return s.backend }

// Refresh reloads typologies and locations.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.RefreshTypologies(ctx); err != nil {
		return err
	}
	return s.RefreshLocations(ctx)
}

// RefreshLocations replaces the known locations with the store's list.
func (s *Session) RefreshLocations(ctx context.Context) error {
	locs, err := s.backend.ListLocations(ctx, s.ProjectID)
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	natural.SortCells(locs)
	s.locations = locs
	s.logger.Debug("locations refreshed", "count", len(locs))
	return nil
}

// RefreshTypologies replaces the known typologies with the store's list.
func (s *Session) RefreshTypologies(ctx context.Context) error {
	typs, err := s.backend.ListTypologies(ctx, s.ProjectID)
	if err != nil {
		return fmt.Errorf("list typologies: %w", err)
	}
	s.typologies = typs
	s.logger.Debug("typologies refreshed", "count", len(typs))
	return nil
}

// Locations returns a copy of the known locations in (floor, position) order.
func (s *Session) Locations() []Location {
	out := make([]Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// Typologies returns a copy of the known typologies.
func (s *Session) Typologies() []Typology {
	out := make([]Typology, len(s.typologies))
	copy(out, s.typologies)
	return out
}

// Typology looks a typology up by id.
func (s *Session) Typology(id uuid.UUID) (Typology, bool) {
	for _, t := range s.typologies {
		if t.ID == id {
			return t, true
		}
	}
	return Typology{}, false
}

// TypologyByCode looks a typology up by its catalog code.
func (s *Session) TypologyByCode(code string) (Typology, bool) {
	for _, t := range s.typologies {
		if t.Code == code {
			return t, true
		}
	}
	return Typology{}, false
}

// LocationAt finds the location at floor/position.
func (s *Session) LocationAt(floor, position string) (Location, bool) {
	for _, l := range s.locations {
		if l.Floor == floor && l.Position == position {
			return l, true
		}
	}
	return Location{}, false
}

// HasFloor reports whether at least one known location sits on floor.
func (s *Session) HasFloor(floor string) bool {
	for _, l := range s.locations {
		if l.Floor == floor {
			return true
		}
	}
	return false
}

// Floors lists the distinct known floors in natural order.
func (s *Session) Floors() []string {
	seen := map[string]bool{}
	var floors []string
	for _, l := range s.locations {
		if !seen[l.Floor] {
			seen[l.Floor] = true
			floors = append(floors, l.Floor)
		}
	}
	natural.Strings(floors)
	return floors
}
