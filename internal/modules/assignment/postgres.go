package assignment

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/georgemunganga/obra-measure/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListLocationIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM locations WHERE project_id=$1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRepo) ListCapacities(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]Capacity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, total_quantity FROM typologies WHERE project_id=$1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[uuid.UUID]Capacity{}
	for rows.Next() {
		var id uuid.UUID
		var c Capacity
		if err := rows.Scan(&id, &c.Code, &c.TotalQuantity); err != nil {
			return nil, err
		}
		out[id] = c
	}
	return out, rows.Err()
}

func (r *postgresRepo) Replace(ctx context.Context, projectID uuid.UUID, pairs []Pair) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE locations SET assigned_typology_id=NULL, updated_at=NOW()
		WHERE project_id=$1 AND assigned_typology_id IS NOT NULL`, projectID); err != nil {
		return err
	}

	if len(pairs) > 0 {
		locIDs := make([]string, len(pairs))
		typIDs := make([]string, len(pairs))
		for i, p := range pairs {
			locIDs[i], typIDs[i] = p.LocationID.String(), p.TypologyID.String()
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE locations l
			SET assigned_typology_id=u.typology_id, updated_at=NOW()
			FROM unnest($2::uuid[], $3::uuid[]) AS u(location_id, typology_id)
			WHERE l.id=u.location_id AND l.project_id=$1`,
			projectID, pq.Array(locIDs), pq.Array(typIDs)); err != nil {
			return err
		}
	}

	// Measurements taken against a typology the location no longer carries are stale.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM measurements m USING locations l
		WHERE m.location_id=l.id AND m.project_id=$1
		  AND (l.assigned_typology_id IS NULL OR l.assigned_typology_id <> m.typology_id)`, projectID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, database.RecountAssignedSQL, projectID); err != nil {
		return err
	}
	return tx.Commit()
}
