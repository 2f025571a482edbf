package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Open starts a counseling case for a student.
func (s *Service) Open(ctx context.Context, studentID uuid.UUID) (*Session, error) {
	if studentID == uuid.Nil {
		return nil, fmt.Errorf("student_id is required")
	}
	sess := &Session{StudentID: studentID, Status: StatusOpen}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, includeStudent bool) (*Session, error) {
	return s.repo.Get(ctx, id, includeStudent)
}

func (s *Service) ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*Session, int, error) {
	return s.repo.ListByStudent(ctx, studentID, limit, offset)
}

// Close marks a case closed. Scheduling flows never close cases; intake
// staff do.
func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	sess, err := s.repo.Get(ctx, id, false)
	if err != nil {
		return err
	}
	sess.Status = StatusClosed
	return s.repo.Update(ctx, sess)
}
