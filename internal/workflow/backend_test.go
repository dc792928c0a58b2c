package workflow

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"github.com/georgemunganga/obra-measure/internal/rangespec"
)

// fakeBackend is an in-memory store for a single project.
type fakeBackend struct {
	typologies   []Typology
	locations    []Location
	measurements map[uuid.UUID]MeasurementRecord

	calls         map[string]int
	generated     []GenerateRequest
	savedPairs    []AssignmentPair
	savedRecords  []MeasurementRecord
	deletedFloors []string
	failGenerate  map[string]error
	failAssign    error
	failMeasure   error
	failReport    error
}

func newFakeBackend(typs ...Typology) *fakeBackend {
	return &fakeBackend{
		typologies:   typs,
		measurements: map[uuid.UUID]MeasurementRecord{},
		calls:        map[string]int{},
		failGenerate: map[string]error{},
	}
}

func (f *fakeBackend) ListTypologies(context.Context, uuid.UUID) ([]Typology, error) {
	f.calls["ListTypologies"]++
	out := make([]Typology, len(f.typologies))
	copy(out, f.typologies)
	return out, nil
}

func (f *fakeBackend) ListLocations(context.Context, uuid.UUID) ([]Location, error) {
	f.calls["ListLocations"]++
	out := make([]Location, len(f.locations))
	copy(out, f.locations)
	return out, nil
}

func (f *fakeBackend) GenerateLocations(_ context.Context, _ uuid.UUID, reqs []GenerateRequest) error {
	f.calls["GenerateLocations"]++
	for _, req := range reqs {
		if err, ok := f.failGenerate[req.RangeSpec]; ok {
			return err
		}
		f.generated = append(f.generated, req)
		tokens, err := rangespec.Parse(req.RangeSpec)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			floor := rangespec.FloorID(rangespec.DefaultPrefix, tok)
			for p := 1; p <= req.CountPerFloor; p++ {
				f.locations = append(f.locations, Location{ID: uuid.New(), Floor: floor, Position: strconv.Itoa(p)})
			}
		}
	}
	return nil
}

func (f *fakeBackend) DeleteFloor(_ context.Context, _ uuid.UUID, floor string) error {
	f.calls["DeleteFloor"]++
	kept := f.locations[:0]
	for _, l := range f.locations {
		if l.Floor == floor {
			delete(f.measurements, l.ID)
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == len(f.locations) {
		return errors.New("floor " + floor + " not found")
	}
	f.deletedFloors = append(f.deletedFloors, floor)
	f.locations = kept
	f.recount()
	return nil
}

func (f *fakeBackend) SaveAssignments(_ context.Context, _ uuid.UUID, pairs []AssignmentPair) error {
	f.calls["SaveAssignments"]++
	if f.failAssign != nil {
		return f.failAssign
	}
	f.savedPairs = append([]AssignmentPair(nil), pairs...)
	byLoc := map[uuid.UUID]uuid.UUID{}
	for _, p := range pairs {
		byLoc[p.LocationID] = p.TypologyID
	}
	for i := range f.locations {
		if t, ok := byLoc[f.locations[i].ID]; ok {
			id := t
			f.locations[i].AssignedTypologyID = &id
		} else {
			f.locations[i].AssignedTypologyID = nil
		}
	}
	f.recount()
	return nil
}

func (f *fakeBackend) recount() {
	for i := range f.typologies {
		n := 0
		for _, l := range f.locations {
			if l.AssignedTypologyID != nil && *l.AssignedTypologyID == f.typologies[i].ID {
				n++
			}
		}
		f.typologies[i].AssignedCount = n
	}
}

func (f *fakeBackend) typology(id uuid.UUID) Typology {
	for _, t := range f.typologies {
		if t.ID == id {
			return t
		}
	}
	return Typology{}
}

func (f *fakeBackend) ListMeasurements(context.Context, uuid.UUID) ([]MeasurementRecord, error) {
	f.calls["ListMeasurements"]++
	var out []MeasurementRecord
	for _, l := range f.locations {
		if l.AssignedTypologyID == nil {
			continue
		}
		t := f.typology(*l.AssignedTypologyID)
		rec, ok := f.measurements[l.ID]
		if !ok {
			rec = MeasurementRecord{LocationID: l.ID, TypologyID: t.ID}
		}
		rec.Floor, rec.Position, rec.TypologyCode = l.Floor, l.Position, t.Code
		rec.NominalWidth, rec.NominalHeight = t.NominalWidth, t.NominalHeight
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeBackend) SaveMeasurements(_ context.Context, _ uuid.UUID, recs []MeasurementRecord) error {
	f.calls["SaveMeasurements"]++
	if f.failMeasure != nil {
		return f.failMeasure
	}
	f.savedRecords = append([]MeasurementRecord(nil), recs...)
	f.measurements = map[uuid.UUID]MeasurementRecord{}
	for _, r := range recs {
		f.measurements[r.LocationID] = r
	}
	return nil
}

func (f *fakeBackend) FetchReport(ctx context.Context, pid uuid.UUID) (*Report, error) {
	f.calls["FetchReport"]++
	if f.failReport != nil {
		return nil, f.failReport
	}
	recs, _ := f.ListMeasurements(ctx, pid)
	rep := &Report{ByLocation: []MeasurementRecord{}, ByTypology: []TypologyGroup{}}
	groups := map[uuid.UUID]int{}
	for _, r := range recs {
		if m, ok := f.measurements[r.LocationID]; !ok || (m.MeasuredWidth == nil && m.MeasuredHeight == nil && m.Notes == "") {
			continue
		}
		rep.ByLocation = append(rep.ByLocation, r)
		i, ok := groups[r.TypologyID]
		if !ok {
			t := f.typology(r.TypologyID)
			rep.ByTypology = append(rep.ByTypology, TypologyGroup{TypologyID: t.ID, Code: t.Code})
			i = len(rep.ByTypology) - 1
			groups[r.TypologyID] = i
		}
		rep.ByTypology[i].Locations = append(rep.ByTypology[i].Locations, r)
	}
	return rep, nil
}
