package domain

import "time"

// UserRole represents the access level of a user.
type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleAdmin    UserRole = "admin"
)

// IsValid checks if the role is one of the allowed values.
func (r UserRole) IsValid() bool {
	return r == UserRoleEmployee || r == UserRoleAdmin
}

// User represents a person whose attendance is tracked.
type User struct {
	ID        string
	Name      string
	Role      UserRole
	Token     string
	IsActive  bool
	CreatedAt time.Time
}

// IsAdmin returns true if the user may access reporting and user management.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
