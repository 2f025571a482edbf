package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	// ListByTherapistAndDate returns the therapist's active appointments
	// whose start falls on the given calendar date.
	ListByTherapistAndDate(ctx context.Context, therapistID uuid.UUID, date time.Time) ([]*Appointment, error)
	// ListBySession returns every appointment under the counseling
	// session, cancelled ones included, oldest first.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*Appointment, error)
	// CountActiveForUserInSession counts the student-user's active
	// appointments under one counseling session.
	CountActiveForUserInSession(ctx context.Context, userID, sessionID uuid.UUID) (int, error)
	// CountFutureActiveByTherapist counts active appointments with
	// start >= from.
	CountFutureActiveByTherapist(ctx context.Context, therapistID uuid.UUID, from time.Time) (int, error)
	// ExistsOverlapping reports whether any active appointment for the
	// therapist overlaps [start, end).
	ExistsOverlapping(ctx context.Context, therapistID uuid.UUID, start, end time.Time) (bool, error)
}

type HolidayRepository interface {
	Insert(ctx context.Context, h *CustomHoliday) error
	// ExistsOnDate compares dates only.
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	List(ctx context.Context, from time.Time) ([]*CustomHoliday, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
