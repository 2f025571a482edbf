// Package scheduling implements appointment booking: availability
// computation, conflict checking, the appointment lifecycle, and
// administratively declared holidays.
package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentDuration is the fixed length of every appointment.
const AppointmentDuration = 50 * time.Minute

// MaxSessionsPerCase is the cap on active appointments a student may
// hold under one counseling session.
const MaxSessionsPerCase = 8

// LunchHour is never bookable.
const LunchHour = 12

// WorkingHours is the bookable start-hour grid. Hour 12 is excluded.
var WorkingHours = []int{9, 10, 11, 13, 14, 15, 16}

// Status is the lifecycle state of an appointment. Persisted as an
// integer code.
type Status int

const (
	StatusPlanned   Status = 1
	StatusCompleted Status = 2
	StatusCancelled Status = 3
	StatusNoShow    Status = 4
)

var statusNames = map[Status]string{
	StatusPlanned:   "planned",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
	StatusNoShow:    "no_show",
}

// Name returns the status name, or "unknown" for undefined codes.
func (s Status) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is a defined status code.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// StatusFromName maps a status name to its code. Returns 0 for unknown
// names.
func StatusFromName(name string) Status {
	for code, n := range statusNames {
		if n == name {
			return code
		}
	}
	return 0
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	SessionID          uuid.UUID `db:"session_id" json:"session_id"`
	TherapistID        uuid.UUID `db:"therapist_id" json:"therapist_id"`
	UserID             uuid.UUID `db:"user_id" json:"user_id"`
	StartTime          time.Time `db:"start_time" json:"start_time"`
	EndTime            time.Time `db:"end_time" json:"end_time"`
	Status             Status    `db:"status" json:"status"`
	Type               string    `db:"type" json:"type"`
	LocationOrLink     string    `db:"location_or_link" json:"location_or_link"`
	CancellationReason *string   `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	SessionNumber      int       `db:"session_number" json:"session_number"`
	Deleted            bool      `db:"deleted" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled && !a.Deleted
}

// CustomHoliday maps to the custom_holiday table.
type CustomHoliday struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Date        time.Time `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TherapistAvailability is the listAvailableTherapists row.
type TherapistAvailability struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Campus      string    `json:"campus"`
	CurrentLoad int       `json:"current_load"`
	// DailySlots is a rough capacity hint independent of any concrete
	// date. It is not a guarantee; only AvailableHours is authoritative.
	DailySlots  int      `json:"daily_slots"`
	WorkingDays []string `json:"working_days"`
}

// CreateAppointmentInput carries the createAppointment request.
type CreateAppointmentInput struct {
	SessionID      uuid.UUID `json:"session_id"`
	TherapistID    uuid.UUID `json:"therapist_id"`
	Date           string    `json:"date"`
	Hour           string    `json:"hour"`
	Type           string    `json:"type"`
	LocationOrLink string    `json:"location_or_link"`
}

// UpdateStatusInput carries the updateStatus request.
type UpdateStatusInput struct {
	Status              Status  `json:"status"`
	Reason              string  `json:"reason,omitempty"`
	TherapistNotes      string  `json:"therapist_notes,omitempty"`
	RiskLevel           string  `json:"risk_level,omitempty"`
	ReferralDestination string  `json:"referral_destination,omitempty"`
}
