package typology

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Typology) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO typologies
		  (id, project_id, code, description, nominal_width, nominal_height, total_quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING assigned_count, created_at, updated_at`,
		t.ID, t.ProjectID, t.Code, t.Description, t.NominalWidth, t.NominalHeight, t.TotalQuantity).
		Scan(&t.AssignedCount, &t.CreatedAt, &t.UpdatedAt)
}

func (r *postgresRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Typology, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, code, description, nominal_width, nominal_height,
		       total_quantity, assigned_count, created_at, updated_at
		FROM typologies WHERE project_id=$1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Typology
	for rows.Next() {
		t := &Typology{}
		var width, height sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Code, &t.Description, &width, &height,
			&t.TotalQuantity, &t.AssignedCount, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if width.Valid {
			t.NominalWidth = &width.Float64
		}
		if height.Valid {
			t.NominalHeight = &height.Float64
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
