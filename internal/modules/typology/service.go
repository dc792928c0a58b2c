package typology

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/database"
	"github.com/georgemunganga/obra-measure/internal/natural"
)

// Service defines typology catalog business logic.
type Service interface {
	List(ctx context.Context, projectID string) ([]*Typology, error)
	Create(ctx context.Context, projectID string, req CreateTypologyRequest) (*Typology, error)
}

type service struct{ repo Repository }

// NewService creates a new typology service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) List(ctx context.Context, projectID string) ([]*Typology, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	items, err := s.repo.ListByProject(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to list typologies: %w", err)
	}
	if items == nil {
		items = []*Typology{}
	}
	for _, t := range items {
		t.AvailableCount = t.TotalQuantity - t.AssignedCount
	}
	sort.SliceStable(items, func(i, j int) bool { return natural.Less(items[i].Code, items[j].Code) })
	return items, nil
}

func (s *service) Create(ctx context.Context, projectID string, req CreateTypologyRequest) (*Typology, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project_id: %w", err)
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if req.TotalQuantity < 0 {
		return nil, fmt.Errorf("invalid total_quantity: must not be negative")
	}
	t := &Typology{
		ID:            uuid.New(),
		ProjectID:     pid,
		Code:          code,
		Description:   req.Description,
		NominalWidth:  req.NominalWidth,
		NominalHeight: req.NominalHeight,
		TotalQuantity: int(req.TotalQuantity),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, fmt.Errorf("typology code %q already exists in this project", code)
		}
		return nil, err
	}
	t.AvailableCount = t.TotalQuantity - t.AssignedCount
	return t, nil
}
