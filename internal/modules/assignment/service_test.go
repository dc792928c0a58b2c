package assignment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/obra-measure/internal/metrics"
)

type memRepo struct {
	locations  []uuid.UUID
	capacities map[uuid.UUID]Capacity
	committed  []Pair
	replaced   int
	failWith   error
}

func (m *memRepo) ListLocationIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.locations, nil
}

func (m *memRepo) ListCapacities(context.Context, uuid.UUID) (map[uuid.UUID]Capacity, error) {
	return m.capacities, nil
}

func (m *memRepo) Replace(_ context.Context, _ uuid.UUID, pairs []Pair) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.replaced++
	m.committed = append([]Pair(nil), pairs...)
	return nil
}

func fixture() (*memRepo, []uuid.UUID, uuid.UUID) {
	locs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	t1 := uuid.New()
	return &memRepo{
		locations:  locs,
		capacities: map[uuid.UUID]Capacity{t1: {Code: "T1", TotalQuantity: 2}},
	}, locs, t1
}

func TestReplaceCommits(t *testing.T) {
	repo, locs, t1 := fixture()
	m := metrics.New()
	svc := NewService(repo, m, nil)

	resp, err := svc.Replace(context.Background(), uuid.NewString(), []Pair{{locs[1], t1}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Assigned)
	assert.Equal(t, []Pair{{locs[1], t1}}, repo.committed)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssignmentBatches.WithLabelValues("committed")))
}

func TestReplaceEmptyBatchClearsAll(t *testing.T) {
	repo, _, _ := fixture()
	resp, err := NewService(repo, nil, nil).Replace(context.Background(), uuid.NewString(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Assigned)
	assert.Equal(t, 1, repo.replaced)
}

func TestReplaceRejects(t *testing.T) {
	repo, locs, t1 := fixture()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()
	pid := uuid.NewString()

	tests := []struct {
		name  string
		pairs []Pair
		want  string
	}{
		{name: "foreign location", pairs: []Pair{{uuid.New(), t1}}, want: "invalid location_id"},
		{name: "duplicate location", pairs: []Pair{{locs[0], t1}, {locs[0], t1}}, want: "appears more than once"},
		{name: "foreign typology", pairs: []Pair{{locs[0], uuid.New()}}, want: "invalid typology_id"},
		{name: "over capacity", pairs: []Pair{{locs[0], t1}, {locs[1], t1}, {locs[2], t1}}, want: "typology T1 exceeds capacity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Replace(ctx, pid, tt.pairs)
			assert.ErrorContains(t, err, tt.want)
		})
	}
	assert.Zero(t, repo.replaced)
}

func TestHandlerStatusCodes(t *testing.T) {
	repo, locs, t1 := fixture()
	r := chi.NewRouter()
	r.Route("/projects/{project_id}", func(r chi.Router) {
		NewHandler(NewService(repo, nil, nil)).RegisterRoutes(r)
	})
	url := "/projects/" + uuid.NewString() + "/assignments"

	over := `[{"location_id":"` + locs[0].String() + `","typology_id":"` + t1.String() + `"},` +
		`{"location_id":"` + locs[1].String() + `","typology_id":"` + t1.String() + `"},` +
		`{"location_id":"` + locs[2].String() + `","typology_id":"` + t1.String() + `"}]`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, url, strings.NewReader(over)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, url, strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	repo.failWith = errors.New("connection reset")
	ok := `[{"location_id":"` + locs[0].String() + `","typology_id":"` + t1.String() + `"}]`
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, url, strings.NewReader(ok)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to persist assignments: connection reset"}`, rec.Body.String())
}
