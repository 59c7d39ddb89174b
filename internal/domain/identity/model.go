package identity

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

// Account is the server-issued identity snapshot held for the lifetime of a
// session. The client never inspects password material; it only stores what
// the login exchange returned.
type Account struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	// Token is an opaque bearer credential some deployments return with the
	// account. Absent means the API is unauthenticated beyond login.
	Token string `json:"token,omitempty"`
}

func (a *Account) IsAdmin() bool { return a.Role == RoleAdmin }

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

// DoctorRegistration is the admin-only request to create a new clinician
// account. The remote API is the authorization authority; the client only
// hides the action from non-admin roles.
type DoctorRegistration struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d DoctorRegistration) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.FullName, validation.Required),
		validation.Field(&d.Email, validation.Required, is.Email),
		validation.Field(&d.Password, validation.Required),
	)
}
