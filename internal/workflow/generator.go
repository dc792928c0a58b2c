package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/georgemunganga/obra-measure/internal/rangespec"
)

// GenerateResult is the outcome of one GenerateRequest. Err is nil on
// success; a failed request never undoes the ones before it.
type GenerateResult struct {
	Request GenerateRequest
	// Floors were sent to the store for creation.
	Floors []string
	// Skipped already had locations and were left untouched.
	Skipped []string
	Err     error
}

// Confirmer approves destructive operations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Generator expands floor range specifications into locations.
type Generator struct {
	session *Session
	prefix  string
	logger  *slog.Logger
}

// NewGenerator creates a generator; prefix forms canonical floor ids ("P").
func NewGenerator(s *Session, prefix string, logger *slog.Logger) *Generator {
	if prefix == "" {
		prefix = rangespec.DefaultPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{session: s, prefix: prefix, logger: logger.With("project_id", s.ProjectID)}
}

// Generate handles reqs in order, awaiting each before the next so later
// requests see the floors earlier ones created. Floors already known to the
// session are skipped entirely, whatever their position count.
func (g *Generator) Generate(ctx context.Context, reqs ...GenerateRequest) []GenerateResult {
	results := make([]GenerateResult, 0, len(reqs))
	for _, req := range reqs {
		res := g.generateOne(ctx, req)
		if res.Err != nil {
			g.logger.Warn("location generation failed", "spec", req.RangeSpec, "error", res.Err)
		} else {
			g.logger.Info("location generation done", "spec", req.RangeSpec,
				"floors", len(res.Floors), "skipped", len(res.Skipped))
		}
		results = append(results, res)
	}
	return results
}

func (g *Generator) generateOne(ctx context.Context, req GenerateRequest) GenerateResult {
	res := GenerateResult{Request: req}
	if req.CountPerFloor <= 0 {
		res.Err = invalid("count_per_floor", "must be greater than 0, got %d", req.CountPerFloor)
		return res
	}
	tokens, err := rangespec.Parse(req.RangeSpec)
	if err != nil {
		if errors.Is(err, rangespec.ErrEmpty) {
			res.Err = invalid("floor_range_spec", "is required")
		} else {
			res.Err = invalid("floor_range_spec", "%v", err)
		}
		return res
	}

	var pending []string
	queued := map[string]bool{}
	for _, tok := range tokens {
		floor := rangespec.FloorID(g.prefix, tok)
		if g.session.HasFloor(floor) {
			res.Skipped = append(res.Skipped, floor)
			continue
		}
		if queued[floor] {
			continue
		}
		queued[floor] = true
		pending = append(pending, tok)
		res.Floors = append(res.Floors, floor)
	}
	if len(pending) == 0 {
		return res
	}

	send := GenerateRequest{RangeSpec: rangespec.Join(pending), CountPerFloor: req.CountPerFloor}
	if err := g.session.backend.GenerateLocations(ctx, g.session.ProjectID, []GenerateRequest{send}); err != nil {
		res.Err = err
		return res
	}
	if err := g.session.RefreshLocations(ctx); err != nil {
		res.Err = fmt.Errorf("locations created but refresh failed: %w", err)
	}
	return res
}

// DeleteFloor removes every location on floor after confirm approves, then
// refreshes the session.
func (g *Generator) DeleteFloor(ctx context.Context, floor string, confirm Confirmer) error {
	if floor == "" {
		return invalid("floor", "is required")
	}
	if confirm == nil {
		return invalid("confirm", "a confirmation is required before deleting floor %s", floor)
	}
	if !confirm.Confirm(fmt.Sprintf("Delete every location on floor %s?", floor)) {
		return ErrConfirmationDeclined
	}
	if err := g.session.backend.DeleteFloor(ctx, g.session.ProjectID, floor); err != nil {
		g.logger.Warn("floor deletion failed", "floor", floor, "error", err)
		return err
	}
	g.logger.Info("floor deleted", "floor", floor)
	return g.session.RefreshLocations(ctx)
}
