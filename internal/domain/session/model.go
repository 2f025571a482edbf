// Package session manages counseling case records. A session spans a
// student's whole counseling process; individual meetings are
// appointments in the scheduling package.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/counsel/counsel/internal/domain/identity"
)

// Session status markers. Status is free text in persistence; these are
// the values the scheduling flows write.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusReferred   = "referred"
	StatusClosed     = "closed"
)

// Session maps to the counseling_session table.
type Session struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	StudentID           uuid.UUID  `db:"student_id" json:"student_id"`
	AdvisorID           *uuid.UUID `db:"advisor_id" json:"advisor_id,omitempty"`
	Status              string     `db:"status" json:"status"`
	RiskLevel           *string    `db:"risk_level" json:"risk_level,omitempty"`
	ReferralDestination *string    `db:"referral_destination" json:"referral_destination,omitempty"`
	TherapistNotes      *string    `db:"therapist_notes" json:"therapist_notes,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`

	// Student is populated when the record is loaded with its student.
	Student *identity.Student `db:"-" json:"student,omitempty"`
}
