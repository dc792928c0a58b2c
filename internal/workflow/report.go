package workflow

import (
	"context"

	"github.com/georgemunganga/obra-measure/internal/natural"
)

// ViewState distinguishes data not fetched yet from data confirmed empty.
type ViewState int

const (
	ViewNotLoaded ViewState = iota
	ViewEmpty
	ViewReady
)

func (v ViewState) String() string {
	switch v {
	case ViewEmpty:
		return "no data"
	case ViewReady:
		return "ready"
	default:
		return "not loaded"
	}
}

// LocationView is the state of the by-location view. A nil report is not loaded.
func (r *Report) LocationView() ViewState {
	if r == nil {
		return ViewNotLoaded
	}
	if len(r.ByLocation) == 0 {
		return ViewEmpty
	}
	return ViewReady
}

// TypologyView is the state of the by-typology view.
func (r *Report) TypologyView() ViewState {
	if r == nil {
		return ViewNotLoaded
	}
	if len(r.ByTypology) == 0 {
		return ViewEmpty
	}
	return ViewReady
}

// Reporter fetches the read-only measurement report.
type Reporter struct {
	session *Session
	report  *Report
}

func NewReporter(s *Session) *Reporter { return &Reporter{session: s} }

// Fetch loads the report. A failed fetch keeps the previous one.
func (r *Reporter) Fetch(ctx context.Context) (*Report, error) {
	rep, err := r.session.backend.FetchReport(ctx, r.session.ProjectID)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		rep = &Report{}
	}
	natural.SortCells(rep.ByLocation)
	for i := range rep.ByTypology {
		natural.SortCells(rep.ByTypology[i].Locations)
	}
	r.report = rep
	return rep, nil
}

// Report returns the last fetched report, nil before the first Fetch.
func (r *Reporter) Report() *Report { return r.report }
