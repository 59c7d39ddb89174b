package identity

import (
	"context"
	"errors"
	"net/http"

	"github.com/medisystem/medisystem/internal/platform/api"
)

// ErrBadCredentials reports a rejected login. It is the only remote failure
// the UX distinguishes from a generic "could not save".
var ErrBadCredentials = errors.New("bad credentials")

// RepoHTTP implements Repository against the remote CRUD API.
type RepoHTTP struct {
	client *api.Client
}

func NewRepoHTTP(client *api.Client) *RepoHTTP {
	return &RepoHTTP{client: client}
}

func (r *RepoHTTP) Login(ctx context.Context, creds Credentials) (*Account, error) {
	var acct Account
	err := r.client.Post(ctx, "/login", creds, &acct)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) || api.IsStatus(err, http.StatusForbidden) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	return &acct, nil
}

func (r *RepoHTTP) RegisterDoctor(ctx context.Context, reg DoctorRegistration) error {
	return r.client.Post(ctx, "/doctors", reg, nil)
}
