package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counsel/counsel/internal/platform/db"
)

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository { return &userRepoPG{pool: pool} }

func (r *userRepoPG) conn(ctx context.Context) db.Queryable {
	return db.ConnFromContext(ctx, r.pool)
}

const userCols = `id, username, email, first_name, last_name, role, deleted, created_at`

func (r *userRepoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.Deleted, &u.CreatedAt)
	return &u, err
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1 AND NOT deleted`, id))
}

func (r *userRepoPG) FindByUsernameAndRole(ctx context.Context, username string, role Role) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE username = $1 AND role = $2 AND NOT deleted`,
		username, role))
}

type studentRepoPG struct{ pool *pgxpool.Pool }

func NewStudentRepoPG(pool *pgxpool.Pool) StudentRepository { return &studentRepoPG{pool: pool} }

func (r *studentRepoPG) conn(ctx context.Context) db.Queryable {
	return db.ConnFromContext(ctx, r.pool)
}

const studentCols = `id, student_number, first_name, last_name, email, created_at`

func (r *studentRepoPG) scanStudent(row pgx.Row) (*Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.StudentNumber, &s.FirstName, &s.LastName, &s.Email, &s.CreatedAt)
	return &s, err
}

func (r *studentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Student, error) {
	return r.scanStudent(r.conn(ctx).QueryRow(ctx,
		`SELECT `+studentCols+` FROM student WHERE id = $1`, id))
}

func (r *studentRepoPG) GetByStudentNumber(ctx context.Context, number string) (*Student, error) {
	return r.scanStudent(r.conn(ctx).QueryRow(ctx,
		`SELECT `+studentCols+` FROM student WHERE student_number = $1`, number))
}
