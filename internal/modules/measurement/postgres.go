package measurement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListRecords(ctx context.Context, projectID uuid.UUID) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, t.id, l.floor, l.position, t.code, t.nominal_width, t.nominal_height,
		       m.measured_width, m.measured_height, COALESCE(m.notes, ''), m.location_id IS NOT NULL
		FROM locations l
		JOIN typologies t ON t.id = l.assigned_typology_id
		LEFT JOIN measurements m ON m.location_id = l.id AND m.typology_id = t.id
		WHERE l.project_id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Record
	for rows.Next() {
		rec := &Record{}
		var nw, nh, mw, mh sql.NullFloat64
		if err := rows.Scan(&rec.LocationID, &rec.TypologyID, &rec.Floor, &rec.Position,
			&rec.TypologyCode, &nw, &nh, &mw, &mh, &rec.Notes, &rec.Stored); err != nil {
			return nil, err
		}
		rec.NominalWidth = floatPtr(nw)
		rec.NominalHeight = floatPtr(nh)
		rec.MeasuredWidth = floatPtr(mw)
		rec.MeasuredHeight = floatPtr(mh)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ReplaceBatch deletes and re-inserts inside a single transaction.
func (r *postgresRepo) ReplaceBatch(ctx context.Context, projectID uuid.UUID, records []*Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE project_id=$1`, projectID); err != nil {
		return fmt.Errorf("clear measurements: %w", err)
	}
	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO measurements
			  (location_id, project_id, typology_id, measured_width, measured_height, notes)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			rec.LocationID, projectID, rec.TypologyID, rec.MeasuredWidth, rec.MeasuredHeight, rec.Notes)
		if err != nil {
			return fmt.Errorf("insert measurement: %w", err)
		}
	}
	return tx.Commit()
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
