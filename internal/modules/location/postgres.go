package location

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/georgemunganga/obra-measure/internal/database"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Location, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, floor, position, assigned_typology_id, created_at, updated_at
		FROM locations WHERE project_id=$1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Location
	for rows.Next() {
		l := &Location{}
		var assigned uuid.NullUUID
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Floor, &l.Position, &assigned,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		if assigned.Valid {
			l.AssignedTypologyID = &assigned.UUID
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *postgresRepo) ListFloors(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT floor FROM locations WHERE project_id=$1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var floors []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		floors = append(floors, f)
	}
	return floors, rows.Err()
}

func (r *postgresRepo) CreateBatch(ctx context.Context, projectID uuid.UUID, locs []*Location) (int, error) {
	if len(locs) == 0 {
		return 0, nil
	}
	ids := make([]string, len(locs))
	floors := make([]string, len(locs))
	positions := make([]string, len(locs))
	for i, l := range locs {
		ids[i], floors[i], positions[i] = l.ID.String(), l.Floor, l.Position
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (id, project_id, floor, position)
		SELECT u.id, $1, u.floor, u.position
		FROM unnest($2::uuid[], $3::text[], $4::text[]) AS u(id, floor, position)
		ON CONFLICT (project_id, floor, position) DO NOTHING`,
		projectID, pq.Array(ids), pq.Array(floors), pq.Array(positions))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *postgresRepo) DeleteByFloor(ctx context.Context, projectID uuid.UUID, floor string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE project_id=$1 AND floor=$2`, projectID, floor)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	if _, err := tx.ExecContext(ctx, database.RecountAssignedSQL, projectID); err != nil {
		return 0, err
	}
	return int(n), tx.Commit()
}
