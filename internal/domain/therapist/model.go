// Package therapist holds the counseling staff records used by
// scheduling. Staff CRUD is managed elsewhere; this slice reads them.
package therapist

import (
	"time"

	"github.com/google/uuid"
)

// CategoryAll is the filter value meaning "no category filter".
const CategoryAll = "Tümü"

// Therapist maps to the therapist table.
type Therapist struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Active    bool      `db:"active" json:"active"`
	Category  string    `db:"category" json:"category"`
	Campus    string    `db:"campus" json:"campus"`
	Email     *string   `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FullName returns the therapist's display name.
func (t *Therapist) FullName() string {
	return t.FirstName + " " + t.LastName
}
