package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counsel/counsel/internal/platform/db"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) db.Queryable {
	return db.ConnFromContext(ctx, r.pool)
}

const apptCols = `id, session_id, therapist_id, user_id, start_time, end_time,
	status, type, location_or_link, cancellation_reason, session_number, deleted, created_at`

func (r *appointmentRepoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.SessionID, &a.TherapistID, &a.UserID, &a.StartTime, &a.EndTime,
		&a.Status, &a.Type, &a.LocationOrLink, &a.CancellationReason, &a.SessionNumber, &a.Deleted, &a.CreatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (id, session_id, therapist_id, user_id, start_time, end_time,
			status, type, location_or_link, cancellation_reason, session_number)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.SessionID, a.TherapistID, a.UserID, a.StartTime, a.EndTime,
		a.Status, a.Type, a.LocationOrLink, a.CancellationReason, a.SessionNumber)
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1 AND NOT deleted`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment
		SET status=$2, cancellation_reason=$3, type=$4, location_or_link=$5
		WHERE id = $1`,
		a.ID, a.Status, a.CancellationReason, a.Type, a.LocationOrLink)
	return err
}

func (r *appointmentRepoPG) ListByTherapistAndDate(ctx context.Context, therapistID uuid.UUID, date time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE therapist_id = $1
		  AND start_time >= $2 AND start_time < $3
		  AND status <> $4 AND NOT deleted
		ORDER BY start_time ASC`,
		therapistID, date, date.AddDate(0, 0, 1), StatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE session_id = $1 AND NOT deleted
		ORDER BY start_time ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) CountActiveForUserInSession(ctx context.Context, userID, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE user_id = $1 AND session_id = $2 AND status <> $3 AND NOT deleted`,
		userID, sessionID, StatusCancelled).Scan(&count)
	return count, err
}

func (r *appointmentRepoPG) CountFutureActiveByTherapist(ctx context.Context, therapistID uuid.UUID, from time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE therapist_id = $1 AND start_time >= $2 AND status <> $3 AND NOT deleted`,
		therapistID, from, StatusCancelled).Scan(&count)
	return count, err
}

func (r *appointmentRepoPG) ExistsOverlapping(ctx context.Context, therapistID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	// Half-open intervals: sharing a boundary is not an overlap.
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE therapist_id = $1
			  AND status <> $2 AND NOT deleted
			  AND start_time < $4 AND end_time > $3
		)`,
		therapistID, StatusCancelled, start, end).Scan(&exists)
	return exists, err
}

type holidayRepoPG struct{ pool *pgxpool.Pool }

func NewHolidayRepoPG(pool *pgxpool.Pool) HolidayRepository {
	return &holidayRepoPG{pool: pool}
}

func (r *holidayRepoPG) conn(ctx context.Context) db.Queryable {
	return db.ConnFromContext(ctx, r.pool)
}

func (r *holidayRepoPG) Insert(ctx context.Context, h *CustomHoliday) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO custom_holiday (id, date, description) VALUES ($1,$2,$3)`,
		h.ID, h.Date, h.Description)
	return err
}

func (r *holidayRepoPG) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM custom_holiday WHERE date = $1::date)`,
		date).Scan(&exists)
	return exists, err
}

func (r *holidayRepoPG) List(ctx context.Context, from time.Time) ([]*CustomHoliday, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, date, description, created_at FROM custom_holiday WHERE date >= $1::date ORDER BY date ASC`,
		from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*CustomHoliday
	for rows.Next() {
		var h CustomHoliday
		if err := rows.Scan(&h.ID, &h.Date, &h.Description, &h.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &h)
	}
	return items, rows.Err()
}

func (r *holidayRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM custom_holiday WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
