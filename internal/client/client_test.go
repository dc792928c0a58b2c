package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/obra-measure/internal/workflow"
)

var (
	pid   = uuid.MustParse("11111111-2222-4333-8444-555555555555")
	quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type captured struct {
	method string
	path   string
	auth   string
	body   []byte
}

func serve(t *testing.T, status int, reply string) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.EscapedPath()
		got.auth = r.Header.Get("Authorization")
		got.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "tok", time.Second, quiet), got
}

func TestListLocations(t *testing.T) {
	c, got := serve(t, http.StatusOK, `[{"id":"`+pid.String()+`","floor":"P1","position":"1","assigned_typology_id":null}]`)

	locs, err := c.ListLocations(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/v1/projects/"+pid.String()+"/locations", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
	require.Len(t, locs, 1)
	assert.Equal(t, "P1/1", locs[0].Address())
	assert.Nil(t, locs[0].AssignedTypologyID)
}

func TestGenerateSendsArray(t *testing.T) {
	c, got := serve(t, http.StatusCreated, `{"created":4,"floors":["P1","P2"],"skipped":[]}`)

	err := c.GenerateLocations(context.Background(), pid, []workflow.GenerateRequest{{RangeSpec: "1-2", CountPerFloor: 2}})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.JSONEq(t, `[{"floor_range_spec":"1-2","count_per_floor":2}]`, string(got.body))
}

func TestDeleteFloorEscapesPath(t *testing.T) {
	c, got := serve(t, http.StatusOK, `{"floor":"P 1","deleted":2}`)

	require.NoError(t, c.DeleteFloor(context.Background(), pid, "P 1"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/api/v1/projects/"+pid.String()+"/locations/floors/P%201", got.path)
}

func TestSaveAssignmentsEmptyBatch(t *testing.T) {
	c, got := serve(t, http.StatusOK, `{"assigned":0}`)

	require.NoError(t, c.SaveAssignments(context.Background(), pid, nil))
	assert.Equal(t, http.MethodPut, got.method)
	assert.JSONEq(t, `[]`, string(got.body))
}

func TestSaveMeasurementsSendsNumbers(t *testing.T) {
	c, got := serve(t, http.StatusOK, `{"saved":1}`)
	w := 150.0
	rec := workflow.MeasurementRecord{LocationID: uuid.New(), TypologyID: uuid.New(), MeasuredWidth: &w}

	require.NoError(t, c.SaveMeasurements(context.Background(), pid, []workflow.MeasurementRecord{rec}))

	var sent []map[string]any
	require.NoError(t, json.Unmarshal(got.body, &sent))
	require.Len(t, sent, 1)
	assert.Equal(t, 150.0, sent[0]["measured_width"])
	assert.Nil(t, sent[0]["measured_height"])
}

func TestFetchReport(t *testing.T) {
	c, _ := serve(t, http.StatusOK, `{"by_location":[],"by_typology":[]}`)

	rep, err := c.FetchReport(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, workflow.ViewEmpty, rep.LocationView())
	assert.Equal(t, workflow.ViewEmpty, rep.TypologyView())
}

func TestErrorMessageIsVerbatim(t *testing.T) {
	cases := []struct {
		name   string
		status int
		reply  string
		want   string
	}{
		{"json error", http.StatusUnprocessableEntity, `{"error":"typology T1 exceeds capacity: 3 of 2"}`, "typology T1 exceeds capacity: 3 of 2"},
		{"not found", http.StatusNotFound, `{"error":"floor P9 not found"}`, "floor P9 not found"},
		{"plain body", http.StatusBadGateway, `upstream down`, "Bad Gateway"},
		{"empty error", http.StatusInternalServerError, `{"error":""}`, "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := serve(t, tc.status, tc.reply)

			_, err := c.ListTypologies(context.Background(), pid)
			require.Error(t, err)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestCreateTypology(t *testing.T) {
	c, got := serve(t, http.StatusCreated, `{"id":"`+pid.String()+`","code":"V1","total_quantity":3,"assigned_count":0}`)

	typ, err := c.CreateTypology(context.Background(), pid, TypologyInput{Code: "V1", TotalQuantity: 3})
	require.NoError(t, err)
	assert.Equal(t, "V1", typ.Code)
	assert.Equal(t, 3, typ.AvailableCount())
	assert.JSONEq(t, `{"code":"V1","total_quantity":3}`, string(got.body))
}

func TestNoTokenNoHeader(t *testing.T) {
	c, got := serve(t, http.StatusOK, `[]`)
	c.token = ""

	_, err := c.ListTypologies(context.Background(), pid)
	require.NoError(t, err)
	assert.Empty(t, got.auth)
}
