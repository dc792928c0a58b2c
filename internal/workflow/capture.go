package workflow

import (
	"context"
	"log/slog"

	"github.com/georgemunganga/obra-measure/internal/lenient"
	"github.com/georgemunganga/obra-measure/internal/natural"
)

// Field names accepted by Capture.SetField.
const (
	FieldMeasuredWidth  = "measuredWidth"
	FieldMeasuredHeight = "measuredHeight"
	FieldNotes          = "notes"
)

// Capture edits a project's measurement records in memory and saves them
// as one replacement batch.
type Capture struct {
	session *Session
	logger  *slog.Logger
	records []MeasurementRecord
	loaded  bool
	closed  bool
}

// NewCapture creates a capture session; call Load to activate it.
func NewCapture(s *Session, logger *slog.Logger) *Capture {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capture{session: s, logger: logger.With("project_id", s.ProjectID)}
}

// Load fetches the current records, replacing any in-memory edits.
func (c *Capture) Load(ctx context.Context) error {
	recs, err := c.session.backend.ListMeasurements(ctx, c.session.ProjectID)
	if err != nil {
		return err
	}
	natural.SortCells(recs)
	c.records = recs
	c.loaded = true
	c.closed = false
	c.logger.Debug("measurements loaded", "records", len(recs))
	return nil
}

// Records returns a copy of the in-memory records.
func (c *Capture) Records() []MeasurementRecord {
	out := make([]MeasurementRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Index finds the record of the location at floor/position, or -1.
func (c *Capture) Index(floor, position string) int {
	for i, r := range c.records {
		if r.Floor == floor && r.Position == position {
			return i
		}
	}
	return -1
}

// SetField edits one field of the record at index. Numeric values that do
// not parse become 0; a blank numeric value clears the measurement.
func (c *Capture) SetField(index int, field, value string) error {
	if index < 0 || index >= len(c.records) {
		return invalid("index", "%d is out of range (%d records)", index, len(c.records))
	}
	rec := &c.records[index]
	switch field {
	case FieldMeasuredWidth, "measured_width":
		rec.MeasuredWidth = lenient.Float(value)
	case FieldMeasuredHeight, "measured_height":
		rec.MeasuredHeight = lenient.Float(value)
	case FieldNotes:
		rec.Notes = value
	default:
		return invalid("field", "unknown field %q", field)
	}
	return nil
}

// Save sends every record as one batch. Success closes the capture; on
// failure the edits stay in memory.
func (c *Capture) Save(ctx context.Context) error {
	if !c.loaded {
		return invalid("capture", "nothing loaded")
	}
	if c.closed {
		return invalid("capture", "already saved; load again to keep editing")
	}
	if err := c.session.backend.SaveMeasurements(ctx, c.session.ProjectID, c.Records()); err != nil {
		c.logger.Warn("measurement save failed", "records", len(c.records), "error", err)
		return err
	}
	c.closed = true
	c.logger.Info("measurements saved", "records", len(c.records))
	return nil
}

// Closed reports whether the last Save succeeded.
func (c *Capture) Closed() bool { return c.closed }
