// Package identity holds user and student records. Account management is
// owned by the university's identity system; this package reads what the
// scheduling flows need.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access role of a user account. Persisted as an integer
// code; translated to a role name at the API boundary.
type Role int

const (
	RoleAdmin     Role = 1
	RoleSecretary Role = 2
	RoleTherapist Role = 3
	RoleStudent   Role = 4
)

var roleNames = map[Role]string{
	RoleAdmin:     "admin",
	RoleSecretary: "secretary",
	RoleTherapist: "therapist",
	RoleStudent:   "student",
}

// Name returns the role's string name, or "unknown" for undefined codes.
func (r Role) Name() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r is a defined role code.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// RoleFromName maps a role name back to its code. Returns 0 for unknown
// names.
func RoleFromName(name string) Role {
	for code, n := range roleNames {
		if n == name {
			return code
		}
	}
	return 0
}

// User maps to the app_user table.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     *string   `db:"email" json:"email,omitempty"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Role      Role      `db:"role" json:"role"`
	Deleted   bool      `db:"deleted" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Student maps to the student table. Student user accounts use the
// student number as their username.
type Student struct {
	ID            uuid.UUID `db:"id" json:"id"`
	StudentNumber string    `db:"student_number" json:"student_number"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Email         *string   `db:"email" json:"email,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
