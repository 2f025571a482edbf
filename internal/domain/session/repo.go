package session

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	// Get loads a session; with includeStudent the student record is
	// joined in.
	Get(ctx context.Context, id uuid.UUID, includeStudent bool) (*Session, error)
	Update(ctx context.Context, s *Session) error
	ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*Session, int, error)
}
