package therapist

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Therapist) error
	Get(ctx context.Context, id uuid.UUID) (*Therapist, error)
	// ListActive returns active therapists ordered by first name. An
	// empty or CategoryAll filter returns every category.
	ListActive(ctx context.Context, category string) ([]*Therapist, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
