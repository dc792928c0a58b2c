package location

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/metrics"
	"github.com/georgemunganga/obra-measure/internal/natural"
	"github.com/georgemunganga/obra-measure/internal/rangespec"
)

// MaxCountPerFloor bounds how many positions one floor may be generated with.
const MaxCountPerFloor = 500

// Service defines location grid business logic.
type Service interface {
	List(ctx context.Context, projectID string) ([]*Location, error)
	// Generate creates the requested floors that do not exist yet. Floors
	// that already hold at least one location are skipped whole.
	Generate(ctx context.Context, projectID string, reqs []GenerateRequest) (*GenerateResponse, error)
	DeleteFloor(ctx context.Context, projectID, floor string) (*DeleteFloorResponse, error)
}

type service struct {
	repo    Repository
	prefix  string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewService creates a new location service. prefix forms canonical floor ids
// from range tokens.
func NewService(repo Repository, prefix string, m *metrics.Metrics, logger *slog.Logger) Service {
	if prefix == "" {
		prefix = rangespec.DefaultPrefix
	}
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, prefix: prefix, metrics: m, logger: logger}
}

func (s *service) List(ctx context.Context, projectID string) ([]*Location, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	locs, err := s.repo.ListByProject(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	if locs == nil {
		locs = []*Location{}
	}
	natural.SortCells(locs)
	return locs, nil
}

func (s *service) Generate(ctx context.Context, projectID string, reqs []GenerateRequest) (*GenerateResponse, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("at least one generation request is required")
	}

	floorsPerReq := make([][]string, len(reqs))
	for i, req := range reqs {
		if req.CountPerFloor <= 0 {
			return nil, fmt.Errorf("invalid count_per_floor %d: must be greater than 0", req.CountPerFloor)
		}
		if req.CountPerFloor > MaxCountPerFloor {
			return nil, fmt.Errorf("invalid count_per_floor %d: must be at most %d", req.CountPerFloor, MaxCountPerFloor)
		}
		floors, err := rangespec.Floors(req.FloorRangeSpec, s.prefix)
		if err != nil {
			if err == rangespec.ErrEmpty {
				return nil, fmt.Errorf("floor_range_spec is required")
			}
			return nil, err
		}
		floorsPerReq[i] = floors
	}

	existing, err := s.repo.ListFloors(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing floors: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, f := range existing {
		taken[f] = true
	}

	resp := &GenerateResponse{Floors: []string{}, Skipped: []string{}}
	var batch []*Location
	for i, floors := range floorsPerReq {
		for _, floor := range floors {
			if taken[floor] {
				resp.Skipped = append(resp.Skipped, floor)
				continue
			}
			taken[floor] = true
			resp.Floors = append(resp.Floors, floor)
			for p := 1; p <= reqs[i].CountPerFloor; p++ {
				batch = append(batch, &Location{
					ID:        uuid.New(),
					ProjectID: pid,
					Floor:     floor,
					Position:  strconv.Itoa(p),
				})
			}
		}
	}

	created, err := s.repo.CreateBatch(ctx, pid, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to create locations: %w", err)
	}
	resp.Created = created
	s.metrics.LocationsCreated.Add(float64(created))
	s.metrics.FloorsSkipped.Add(float64(len(resp.Skipped)))
	s.logger.Info("locations generated",
		"project_id", pid, "created", created,
		"floors", strings.Join(resp.Floors, ","), "skipped", strings.Join(resp.Skipped, ","))
	return resp, nil
}

func (s *service) DeleteFloor(ctx context.Context, projectID, floor string) (*DeleteFloorResponse, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	floor = strings.TrimSpace(floor)
	if floor == "" {
		return nil, fmt.Errorf("floor is required")
	}
	n, err := s.repo.DeleteByFloor(ctx, pid, floor)
	if err != nil {
		return nil, fmt.Errorf("failed to delete floor %s: %w", floor, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("floor %s not found", floor)
	}
	s.metrics.FloorsDeleted.Inc()
	s.logger.Info("floor deleted", "project_id", pid, "floor", floor, "deleted", n)
	return &DeleteFloorResponse{Floor: floor, Deleted: n}, nil
}
