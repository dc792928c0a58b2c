package measurement

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/metrics"
	"github.com/georgemunganga/obra-measure/internal/natural"
)

// Service defines measurement capture and reporting business logic.
type Service interface {
	List(ctx context.Context, projectID string) ([]*Record, error)
	// Replace persists records as the project's complete measurement set.
	Replace(ctx context.Context, projectID string, records []*Record) (*ReplaceResponse, error)
	Report(ctx context.Context, projectID string) (*Report, error)
}

type service struct {
	repo    Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService creates a new measurement service.
func NewService(repo Repository, m *metrics.Metrics, logger *slog.Logger) Service {
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, metrics: m, logger: logger}
}

func (s *service) List(ctx context.Context, projectID string) ([]*Record, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	recs, err := s.repo.ListRecords(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	if recs == nil {
		recs = []*Record{}
	}
	natural.SortCells(recs)
	return recs, nil
}

func (s *service) Replace(ctx context.Context, projectID string, records []*Record) (*ReplaceResponse, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	current, err := s.repo.ListRecords(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned locations: %w", err)
	}
	assigned := make(map[uuid.UUID]uuid.UUID, len(current))
	for _, c := range current {
		assigned[c.LocationID] = c.TypologyID
	}

	seen := make(map[uuid.UUID]bool, len(records))
	for _, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("invalid batch: null record")
		}
		typ, ok := assigned[rec.LocationID]
		if !ok {
			return nil, fmt.Errorf("invalid location_id %s: location has no assigned typology", rec.LocationID)
		}
		if typ != rec.TypologyID {
			return nil, fmt.Errorf("invalid typology_id %s for location %s: location is assigned to %s", rec.TypologyID, rec.LocationID, typ)
		}
		if seen[rec.LocationID] {
			return nil, fmt.Errorf("invalid batch: location %s appears more than once", rec.LocationID)
		}
		seen[rec.LocationID] = true
		if negative(rec.MeasuredWidth) || negative(rec.MeasuredHeight) {
			return nil, fmt.Errorf("invalid measurement for location %s: dimensions must not be negative", rec.LocationID)
		}
	}

	if err := s.repo.ReplaceBatch(ctx, pid, records); err != nil {
		return nil, fmt.Errorf("failed to persist measurements: %w", err)
	}
	s.metrics.MeasurementSaves.Inc()
	s.logger.Info("measurements saved", "project_id", pid, "records", len(records))
	return &ReplaceResponse{Saved: len(records)}, nil
}

func (s *service) Report(ctx context.Context, projectID string) (*Report, error) {
	recs, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report := &Report{ByLocation: []*Record{}, ByTypology: []*TypologyGroup{}}
	groups := map[uuid.UUID]*TypologyGroup{}
	for _, rec := range recs {
		if !rec.measured() {
			continue
		}
		report.ByLocation = append(report.ByLocation, rec)
		g, ok := groups[rec.TypologyID]
		if !ok {
			g = &TypologyGroup{
				TypologyID:    rec.TypologyID,
				Code:          rec.TypologyCode,
				NominalWidth:  rec.NominalWidth,
				NominalHeight: rec.NominalHeight,
			}
			groups[rec.TypologyID] = g
			report.ByTypology = append(report.ByTypology, g)
		}
		g.Locations = append(g.Locations, rec)
	}
	sort.SliceStable(report.ByTypology, func(i, j int) bool {
		return natural.Less(report.ByTypology[i].Code, report.ByTypology[j].Code)
	})
	return report, nil
}

// measured reports whether rec carries anything beyond the blank row a full
// batch save writes for every assigned location.
func (rec *Record) measured() bool {
	return rec.Stored && (rec.MeasuredWidth != nil || rec.MeasuredHeight != nil || strings.TrimSpace(rec.Notes) != "")
}

func negative(v *float64) bool { return v != nil && *v < 0 }
