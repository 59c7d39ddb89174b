package identity

import "context"

// Repository is the remote API surface for accounts.
type Repository interface {
	Login(ctx context.Context, creds Credentials) (*Account, error)
	RegisterDoctor(ctx context.Context, reg DoctorRegistration) error
}
