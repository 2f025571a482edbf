package therapist

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

// Create registers a new staff member. New therapists start active
// unless the record says otherwise.
func (s *Service) Create(ctx context.Context, t *Therapist) error {
	if t.FirstName == "" || t.LastName == "" {
		return fmt.Errorf("therapist name is required")
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return s.repo.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Therapist, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListActive(ctx context.Context, category string) ([]*Therapist, error) {
	return s.repo.ListActive(ctx, category)
}

// Deactivate takes a therapist out of the bookable pool. Existing
// appointments are untouched; new bookings against them are refused.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}
