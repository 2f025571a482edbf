package identity

import (
	"context"

	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByUsernameAndRole returns the non-deleted user with the given
	// username and role, or pgx.ErrNoRows.
	FindByUsernameAndRole(ctx context.Context, username string, role Role) (*User, error)
}

type StudentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Student, error)
	GetByStudentNumber(ctx context.Context, number string) (*Student, error)
}
