package session

import (
	"github.com/elimu-lms/elimu/core"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var AllRoles = []string{RoleAdmin, RoleEmployee}

// User is the backend's record of who is logged in. The role is
// immutable from the client's perspective; only the backend changes it.
type User struct {
	ID          string `json:"_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"user_name,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DOB         string `json:"dob,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (u User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u User) IsEmployee() bool { return u.Role == RoleEmployee }

func (u User) FullName() string {
	return core.CleanString(u.FirstName + " " + u.LastName)
}

// Session is the client's belief about who is logged in and with what
// credential. A valid session has both a user and a token, or neither.
type Session struct {
	User  *User
	Token string
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// LoginForm carries login credentials.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (f *LoginForm) Validate() error {
	f.Email = core.CleanString(f.Email, true)
	return core.Validate.Struct(f)
}

// ChangePasswordForm carries a password change request.
type ChangePasswordForm struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (f *ChangePasswordForm) Validate() error {
	return core.Validate.Struct(f)
}
