package therapist

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counsel/counsel/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	return db.ConnFromContext(ctx, r.pool)
}

const therapistCols = `id, first_name, last_name, active, category, campus, email, created_at`

func (r *repoPG) scanTherapist(row pgx.Row) (*Therapist, error) {
	var t Therapist
	err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Active, &t.Category, &t.Campus, &t.Email, &t.CreatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Therapist) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO therapist (id, first_name, last_name, active, category, campus, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		t.ID, t.FirstName, t.LastName, t.Active, t.Category, t.Campus, t.Email)
	return err
}

func (r *repoPG) Get(ctx context.Context, id uuid.UUID) (*Therapist, error) {
	return r.scanTherapist(r.conn(ctx).QueryRow(ctx,
		`SELECT `+therapistCols+` FROM therapist WHERE id = $1`, id))
}

func (r *repoPG) ListActive(ctx context.Context, category string) ([]*Therapist, error) {
	query := `SELECT ` + therapistCols + ` FROM therapist WHERE active`
	var args []interface{}
	if category != "" && category != CategoryAll {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY first_name ASC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Therapist
	for rows.Next() {
		t, err := r.scanTherapist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *repoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE therapist SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
