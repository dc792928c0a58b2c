package assignment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/metrics"
)

// Service defines assignment batch business logic.
type Service interface {
	// Replace persists pairs as the project's complete assignment set.
	Replace(ctx context.Context, projectID string, pairs []Pair) (*ReplaceResponse, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService creates a new assignment service.
func NewService(repo Repository, m *metrics.Metrics, logger *slog.Logger) Service {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, metrics: m, logger: logger}
}

func (s *service) Replace(ctx context.Context, projectID string, pairs []Pair) (*ReplaceResponse, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	if err := s.validate(ctx, pid, pairs); err != nil {
		s.metrics.AssignmentBatches.WithLabelValues("rejected").Inc()
		s.logger.Warn("assignment batch rejected", "project_id", pid, "error", err)
		return nil, err
	}
	if err := s.repo.Replace(ctx, pid, pairs); err != nil {
		s.metrics.AssignmentBatches.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to persist assignments: %w", err)
	}
	s.metrics.AssignmentBatches.WithLabelValues("committed").Inc()
	s.logger.Info("assignments committed", "project_id", pid, "assigned", len(pairs))
	return &ReplaceResponse{Assigned: len(pairs)}, nil
}

// validate enforces: every location belongs to the project and appears once,
// every typology belongs to the project, and no typology is used more often
// than its total quantity.
func (s *service) validate(ctx context.Context, pid uuid.UUID, pairs []Pair) error {
	locIDs, err := s.repo.ListLocationIDs(ctx, pid)
	if err != nil {
		return fmt.Errorf("failed to load locations: %w", err)
	}
	known := make(map[uuid.UUID]bool, len(locIDs))
	for _, id := range locIDs {
		known[id] = true
	}
	caps, err := s.repo.ListCapacities(ctx, pid)
	if err != nil {
		return fmt.Errorf("failed to load typologies: %w", err)
	}

	seen := make(map[uuid.UUID]bool, len(pairs))
	used := map[uuid.UUID]int{}
	for _, p := range pairs {
		if !known[p.LocationID] {
			return fmt.Errorf("invalid location_id %s: not part of this project", p.LocationID)
		}
		if seen[p.LocationID] {
			return fmt.Errorf("invalid batch: location %s appears more than once", p.LocationID)
		}
		seen[p.LocationID] = true
		if _, ok := caps[p.TypologyID]; !ok {
			return fmt.Errorf("invalid typology_id %s: not part of this project", p.TypologyID)
		}
		used[p.TypologyID]++
	}
	for id, n := range used {
		c := caps[id]
		if n > c.TotalQuantity {
			return fmt.Errorf("typology %s exceeds capacity: %d assigned, total quantity %d", c.Code, n, c.TotalQuantity)
		}
	}
	return nil
}
