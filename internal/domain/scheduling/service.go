package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/counsel/counsel/internal/domain/identity"
	"github.com/counsel/counsel/internal/domain/session"
	"github.com/counsel/counsel/internal/domain/therapist"
	"github.com/counsel/counsel/internal/platform/calendar"
)

// Accepted date input layouts, in preference order.
const (
	dateLayoutISO    = "2006-01-02"
	dateLayoutDotted = "02.01.2006"
	hourLayout       = "15:04"
)

var workingDayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TxRunner executes fn inside a storage transaction. The context passed
// to fn carries the transaction so repositories write through it.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// ServiceDeps bundles the service's collaborators.
type ServiceDeps struct {
	Appointments AppointmentRepository
	Holidays     HolidayRepository
	Therapists   therapist.Repository
	Sessions     session.Repository
	Users        identity.UserRepository
	Resolver     *HolidayResolver
	Clock        calendar.Clock
	Notifier     Notifier
	Tx           TxRunner
	Logger       zerolog.Logger
}

// Service orchestrates the appointment lifecycle: availability,
// booking, status transitions, and custom holidays.
type Service struct {
	appointments AppointmentRepository
	holidays     HolidayRepository
	therapists   therapist.Repository
	sessions     session.Repository
	users        identity.UserRepository
	resolver     *HolidayResolver
	clock        calendar.Clock
	notifier     Notifier
	tx           TxRunner
	locks        *keyedMutex
	logger       zerolog.Logger
}

func NewService(d ServiceDeps) *Service {
	if d.Clock == nil {
		d.Clock = calendar.SystemClock()
	}
	if d.Tx == nil {
		d.Tx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{
		appointments: d.Appointments,
		holidays:     d.Holidays,
		therapists:   d.Therapists,
		sessions:     d.Sessions,
		users:        d.Users,
		resolver:     d.Resolver,
		clock:        d.Clock,
		notifier:     d.Notifier,
		tx:           d.Tx,
		locks:        newKeyedMutex(),
		logger:       d.Logger,
	}
}

// parseDate accepts "2006-01-02" or "02.01.2006", in that order.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayoutISO, s); err == nil {
		return t, nil
	}
	return time.Parse(dateLayoutDotted, s)
}

// CreateAppointment books a 50-minute slot for the session's student
// with the given therapist. The whole check-then-insert sequence runs
// under the therapist's booking lock.
func (s *Service) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*Appointment, error) {
	if in.SessionID == uuid.Nil || in.TherapistID == uuid.Nil {
		return nil, invalid("session and therapist are required")
	}

	th, err := s.therapists.Get(ctx, in.TherapistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("therapist not found")
	}
	if err != nil {
		return nil, internal("loading therapist", err)
	}
	if !th.Active {
		return nil, invalid("selected therapist is not active")
	}

	day, err := parseDate(in.Date)
	if err != nil {
		return nil, invalid("invalid date format")
	}
	hour, err := time.Parse(hourLayout, in.Hour)
	if err != nil {
		return nil, invalid("invalid hour format")
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour.Hour(), hour.Minute(), 0, 0, day.Location())

	now := s.clock.Now()
	if start.Before(now) {
		return nil, invalid("cannot book in the past")
	}
	if start.Hour() == LunchHour {
		return nil, invalid("lunch hour is not bookable")
	}

	holiday, err := s.resolver.IsHoliday(ctx, start)
	if err != nil {
		return nil, internal("resolving holiday", err)
	}
	if holiday {
		return nil, invalid("selected date is not a working day")
	}

	sess, err := s.sessions.Get(ctx, in.SessionID, true)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("session not found")
	}
	if err != nil {
		return nil, internal("loading session", err)
	}
	if sess.Student == nil {
		return nil, notFound("student not found")
	}

	user, err := s.users.FindByUsernameAndRole(ctx, sess.Student.StudentNumber, identity.RoleStudent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("student has no system account")
	}
	if err != nil {
		return nil, internal("loading student account", err)
	}

	unlock := s.locks.Lock(in.TherapistID)
	defer unlock()

	count, err := s.appointments.CountActiveForUserInSession(ctx, user.ID, sess.ID)
	if err != nil {
		return nil, internal("counting appointments", err)
	}
	if count >= MaxSessionsPerCase {
		return nil, conflict("8-session limit reached")
	}

	end := start.Add(AppointmentDuration)
	overlapping, err := s.appointments.ExistsOverlapping(ctx, in.TherapistID, start, end)
	if err != nil {
		return nil, internal("checking conflicts", err)
	}
	if overlapping {
		return nil, conflict("slot no longer available")
	}

	appt := &Appointment{
		ID:             uuid.New(),
		SessionID:      sess.ID,
		TherapistID:    in.TherapistID,
		UserID:         user.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         StatusPlanned,
		Type:           in.Type,
		LocationOrLink: in.LocationOrLink,
		SessionNumber:  count + 1,
		CreatedAt:      now,
	}

	// Booking a slot assigns the therapist to the case.
	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.appointments.Create(ctx, appt); err != nil {
			return err
		}
		therapistID := in.TherapistID
		sess.AdvisorID = &therapistID
		sess.Status = session.StatusInProgress
		return s.sessions.Update(ctx, sess)
	})
	if err != nil {
		return nil, internal("saving appointment", err)
	}

	if s.notifier != nil && user.Email != nil && *user.Email != "" {
		s.notifier.SendAppointmentEmail(
			*user.Email,
			sess.Student.FullName(),
			th.FullName(),
			start.Format(dateLayoutISO),
			start.Format(hourLayout),
			in.Type,
			in.LocationOrLink,
		)
	}

	return appt, nil
}

// UpdateStatus moves an appointment out of Planned. Terminal
// appointments cannot transition again.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, in UpdateStatusInput) (*Appointment, error) {
	if !in.Status.Valid() || !in.Status.Terminal() {
		return nil, invalid("invalid target status")
	}

	appt, err := s.appointments.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("appointment not found")
	}
	if err != nil {
		return nil, internal("loading appointment", err)
	}
	if appt.Status.Terminal() {
		return nil, conflict(fmt.Sprintf("appointment is already %s", appt.Status.Name()))
	}

	appt.Status = in.Status

	var sess *session.Session
	reason := in.Reason

	switch in.Status {
	case StatusCancelled, StatusNoShow:
		if reason == "" {
			reason = "not specified"
		}
		appt.CancellationReason = &reason
	case StatusCompleted:
		sess, err = s.sessions.Get(ctx, appt.SessionID, false)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("session not found")
		}
		if err != nil {
			return nil, internal("loading session", err)
		}
		if in.TherapistNotes != "" {
			notes := in.TherapistNotes
			sess.TherapistNotes = &notes
		}
		if in.RiskLevel != "" {
			risk := in.RiskLevel
			sess.RiskLevel = &risk
		}
		if in.ReferralDestination != "" {
			dest := in.ReferralDestination
			sess.ReferralDestination = &dest
			sess.Status = session.StatusReferred
		}
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.appointments.Update(ctx, appt); err != nil {
			return err
		}
		if sess != nil {
			return s.sessions.Update(ctx, sess)
		}
		return nil
	})
	if err != nil {
		return nil, internal("saving status change", err)
	}

	if in.Status == StatusCancelled || in.Status == StatusNoShow {
		s.sendCancellationNotice(ctx, appt, reason)
	}

	return appt, nil
}

// sendCancellationNotice is best-effort: lookup failures are logged
// and the transition stands either way.
func (s *Service) sendCancellationNotice(ctx context.Context, appt *Appointment, reason string) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.GetByID(ctx, appt.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("appointment_id", appt.ID.String()).
			Msg("skipping cancellation notice: user lookup failed")
		return
	}
	if user.Email == nil || *user.Email == "" {
		return
	}
	therapistName := ""
	if th, err := s.therapists.Get(ctx, appt.TherapistID); err == nil {
		therapistName = th.FullName()
	}
	s.notifier.SendCancellationEmail(
		*user.Email,
		user.FullName(),
		therapistName,
		appt.StartTime.Format(dateLayoutISO),
		appt.StartTime.Format(hourLayout),
		reason,
	)
}

// GetAppointment loads one appointment.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("appointment not found")
	}
	if err != nil {
		return nil, internal("loading appointment", err)
	}
	return appt, nil
}

// ListTherapistDay returns the therapist's active appointments on the
// given date, oldest first.
func (s *Service) ListTherapistDay(ctx context.Context, therapistID uuid.UUID, dateString string) ([]*Appointment, error) {
	day, err := parseDate(dateString)
	if err != nil {
		return nil, invalid("invalid date format")
	}
	items, err := s.appointments.ListByTherapistAndDate(ctx, therapistID, day)
	if err != nil {
		return nil, internal("listing appointments", err)
	}
	return items, nil
}

// ListSessionAppointments returns the full appointment history of a
// counseling session, cancelled ones included.
func (s *Service) ListSessionAppointments(ctx context.Context, sessionID uuid.UUID) ([]*Appointment, error) {
	items, err := s.appointments.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, internal("listing appointments", err)
	}
	return items, nil
}

// AvailableHours returns the bookable start hours for the therapist on
// the given date, ascending. A missing or inactive therapist and a
// non-working day both yield an empty list, not an error.
func (s *Service) AvailableHours(ctx context.Context, therapistID uuid.UUID, dateString string) ([]int, error) {
	day, err := parseDate(dateString)
	if err != nil {
		return nil, invalid("invalid date format")
	}

	th, err := s.therapists.Get(ctx, therapistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return []int{}, nil
	}
	if err != nil {
		return nil, internal("loading therapist", err)
	}
	if !th.Active {
		return []int{}, nil
	}

	holiday, err := s.resolver.IsHoliday(ctx, day)
	if err != nil {
		return nil, internal("resolving holiday", err)
	}
	if holiday {
		return []int{}, nil
	}

	booked, err := s.appointments.ListByTherapistAndDate(ctx, therapistID, day)
	if err != nil {
		return nil, internal("listing appointments", err)
	}
	taken := make(map[int]bool, len(booked))
	for _, a := range booked {
		taken[a.StartTime.Hour()] = true
	}

	hours := make([]int, 0, len(WorkingHours))
	for _, h := range WorkingHours {
		if !taken[h] {
			hours = append(hours, h)
		}
	}
	return hours, nil
}

// ListAvailableTherapists returns active therapists with their load
// figures, filtered by category and ordered by first name.
func (s *Service) ListAvailableTherapists(ctx context.Context, category string) ([]*TherapistAvailability, error) {
	therapists, err := s.therapists.ListActive(ctx, category)
	if err != nil {
		return nil, internal("listing therapists", err)
	}

	now := s.clock.Now()
	out := make([]*TherapistAvailability, 0, len(therapists))
	for _, th := range therapists {
		load, err := s.appointments.CountFutureActiveByTherapist(ctx, th.ID, now)
		if err != nil {
			return nil, internal("counting therapist load", err)
		}
		slots := 5 - load%5
		if slots < 0 {
			slots = 0
		}
		out = append(out, &TherapistAvailability{
			ID:          th.ID,
			Name:        th.FullName(),
			Category:    th.Category,
			Campus:      th.Campus,
			CurrentLoad: load,
			DailySlots:  slots,
			WorkingDays: workingDayNames,
		})
	}
	return out, nil
}

// AddCustomHoliday declares a non-working date. Only admins and
// secretaries may declare one; the date must be today or later and not
// already declared.
func (s *Service) AddCustomHoliday(ctx context.Context, dateString, description string, role identity.Role) (*CustomHoliday, error) {
	if role != identity.RoleAdmin && role != identity.RoleSecretary {
		return nil, unauthorized("unauthorized")
	}

	day, err := time.Parse(dateLayoutISO, dateString)
	if err != nil {
		return nil, invalid("invalid format")
	}
	today := calendar.DateOnly(s.clock.Now())
	if day.Before(today) {
		return nil, invalid("cannot add past holiday")
	}

	exists, err := s.holidays.ExistsOnDate(ctx, day)
	if err != nil {
		return nil, internal("checking holiday", err)
	}
	if exists {
		return nil, conflict("already a holiday")
	}

	if description == "" {
		description = "administrative closure"
	}
	holiday := &CustomHoliday{
		ID:          uuid.New(),
		Date:        day,
		Description: description,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.holidays.Insert(ctx, holiday); err != nil {
		return nil, internal("saving holiday", err)
	}
	return holiday, nil
}

// ListCustomHolidays returns declared holidays from today onward.
func (s *Service) ListCustomHolidays(ctx context.Context) ([]*CustomHoliday, error) {
	holidays, err := s.holidays.List(ctx, calendar.DateOnly(s.clock.Now()))
	if err != nil {
		return nil, internal("listing holidays", err)
	}
	return holidays, nil
}

// DeleteCustomHoliday removes a declared holiday. Same authorization as
// AddCustomHoliday; an edit is a delete followed by a recreate.
func (s *Service) DeleteCustomHoliday(ctx context.Context, id uuid.UUID, role identity.Role) error {
	if role != identity.RoleAdmin && role != identity.RoleSecretary {
		return unauthorized("unauthorized")
	}
	if err := s.holidays.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("holiday not found")
		}
		return internal("deleting holiday", err)
	}
	return nil
}
