package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Outcome is what a Toggle did to a location.
type Outcome int

const (
	// Unchanged: the location carries a different typology and must be
	// freed before it can be reassigned.
	Unchanged Outcome = iota
	Assigned
	Unassigned
)

func (o Outcome) String() string {
	switch o {
	case Assigned:
		return "assigned"
	case Unassigned:
		return "unassigned"
	default:
		return "unchanged"
	}
}

// Engine holds an in-memory copy of the session's assignments. Toggle
// only mutates that copy; Save commits the whole set in one request.
type Engine struct {
	session  *Session
	logger   *slog.Logger
	working  []Location
	index    map[uuid.UUID]int
	selected *uuid.UUID
}

// NewEngine snapshots the session's current locations.
func NewEngine(s *Session, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{session: s, logger: logger.With("project_id", s.ProjectID)}
	e.Reset()
	return e
}

// Reset discards pending toggles and re-reads the session's locations.
func (e *Engine) Reset() {
	e.working = e.session.Locations()
	e.index = make(map[uuid.UUID]int, len(e.working))
	for i, l := range e.working {
		e.index[l.ID] = i
	}
}

// SelectTypology records the typology later toggles apply.
func (e *Engine) SelectTypology(id uuid.UUID) error {
	if _, ok := e.session.Typology(id); !ok {
		return invalid("typology", "%s is not in this project", id)
	}
	e.selected = &id
	return nil
}

// Selected returns the active typology.
func (e *Engine) Selected() (Typology, bool) {
	if e.selected == nil {
		return Typology{}, false
	}
	return e.session.Typology(*e.selected)
}

// Toggle flips locationID relative to the selected typology: assigned to it
// becomes unassigned, unassigned becomes assigned (unless the typology is
// already used TotalQuantity times), and assigned elsewhere is left alone.
func (e *Engine) Toggle(locationID uuid.UUID) (Outcome, error) {
	sel, ok := e.Selected()
	if !ok {
		return Unchanged, ErrNoTypologySelected
	}
	i, ok := e.index[locationID]
	if !ok {
		return Unchanged, invalid("location", "%s is not in this project", locationID)
	}
	loc := &e.working[i]

	switch {
	case loc.AssignedTypologyID != nil && *loc.AssignedTypologyID == sel.ID:
		loc.AssignedTypologyID = nil
		return Unassigned, nil
	case loc.AssignedTypologyID == nil:
		if used := e.InUse(sel.ID); used >= sel.TotalQuantity {
			return Unchanged, fmt.Errorf("%w: %s is placed on %d of %d", ErrCapacityExceeded, sel.Code, used, sel.TotalQuantity)
		}
		id := sel.ID
		loc.AssignedTypologyID = &id
		return Assigned, nil
	default:
		return Unchanged, nil
	}
}

// InUse counts working locations that reference typologyID, pending toggles included.
func (e *Engine) InUse(typologyID uuid.UUID) int {
	n := 0
	for _, l := range e.working {
		if l.AssignedTypologyID != nil && *l.AssignedTypologyID == typologyID {
			n++
		}
	}
	return n
}

// Available is the last-known server figure TotalQuantity - AssignedCount;
// it does not move with pending toggles.
func (e *Engine) Available(typologyID uuid.UUID) int {
	t, ok := e.session.Typology(typologyID)
	if !ok {
		return 0
	}
	return t.AvailableCount()
}

// Assignment returns the working typology of a location, nil if unassigned.
func (e *Engine) Assignment(locationID uuid.UUID) *uuid.UUID {
	i, ok := e.index[locationID]
	if !ok || e.working[i].AssignedTypologyID == nil {
		return nil
	}
	id := *e.working[i].AssignedTypologyID
	return &id
}

// Locations returns the working copy in (floor, position) order.
func (e *Engine) Locations() []Location {
	out := make([]Location, len(e.working))
	copy(out, e.working)
	return out
}

// Pending is the batch Save would send: every assigned working location.
func (e *Engine) Pending() []AssignmentPair {
	pairs := []AssignmentPair{}
	for _, l := range e.working {
		if l.AssignedTypologyID != nil {
			pairs = append(pairs, AssignmentPair{LocationID: l.ID, TypologyID: *l.AssignedTypologyID})
		}
	}
	return pairs
}

// Save commits Pending as the project's full assignment set. On failure the
// working state is kept so the caller can retry.
func (e *Engine) Save(ctx context.Context) error {
	pairs := e.Pending()
	if err := e.session.backend.SaveAssignments(ctx, e.session.ProjectID, pairs); err != nil {
		e.logger.Warn("assignment commit failed", "pairs", len(pairs), "error", err)
		return err
	}
	e.logger.Info("assignments committed", "pairs", len(pairs))
	return nil
}
