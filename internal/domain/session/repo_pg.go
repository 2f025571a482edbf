package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/counsel/counsel/internal/domain/identity"
	"github.com/counsel/counsel/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	return db.ConnFromContext(ctx, r.pool)
}

const sessionCols = `id, student_id, advisor_id, status, risk_level, referral_destination, therapist_notes, created_at, updated_at`

func (r *repoPG) scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.StudentID, &s.AdvisorID, &s.Status, &s.RiskLevel,
		&s.ReferralDestination, &s.TherapistNotes, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusOpen
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO counseling_session (id, student_id, advisor_id, status, risk_level, referral_destination, therapist_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		s.ID, s.StudentID, s.AdvisorID, s.Status, s.RiskLevel, s.ReferralDestination, s.TherapistNotes)
	return err
}

func (r *repoPG) Get(ctx context.Context, id uuid.UUID, includeStudent bool) (*Session, error) {
	if !includeStudent {
		return r.scanSession(r.conn(ctx).QueryRow(ctx,
			`SELECT `+sessionCols+` FROM counseling_session WHERE id = $1`, id))
	}

	row := r.conn(ctx).QueryRow(ctx, `
		SELECT cs.id, cs.student_id, cs.advisor_id, cs.status, cs.risk_level,
			cs.referral_destination, cs.therapist_notes, cs.created_at, cs.updated_at,
			st.id, st.student_number, st.first_name, st.last_name, st.email, st.created_at
		FROM counseling_session cs
		JOIN student st ON st.id = cs.student_id
		WHERE cs.id = $1`, id)

	var s Session
	var st identity.Student
	err := row.Scan(&s.ID, &s.StudentID, &s.AdvisorID, &s.Status, &s.RiskLevel,
		&s.ReferralDestination, &s.TherapistNotes, &s.CreatedAt, &s.UpdatedAt,
		&st.ID, &st.StudentNumber, &st.FirstName, &st.LastName, &st.Email, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Student = &st
	return &s, nil
}

func (r *repoPG) Update(ctx context.Context, s *Session) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE counseling_session
		SET advisor_id=$2, status=$3, risk_level=$4, referral_destination=$5, therapist_notes=$6, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.AdvisorID, s.Status, s.RiskLevel, s.ReferralDestination, s.TherapistNotes)
	return err
}

func (r *repoPG) ListByStudent(ctx context.Context, studentID uuid.UUID, limit, offset int) ([]*Session, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM counseling_session WHERE student_id = $1`, studentID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+sessionCols+` FROM counseling_session WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		studentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Session
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
