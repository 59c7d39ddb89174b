package appointment

import (
	"context"

	"github.com/medisystem/medisystem/internal/platform/api"
)

// RepoHTTP implements Repository against the remote CRUD API.
type RepoHTTP struct {
	client *api.Client
}

func NewRepoHTTP(client *api.Client) *RepoHTTP {
	return &RepoHTTP{client: client}
}

func (r *RepoHTTP) List(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := r.client.Get(ctx, "/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RepoHTTP) Create(ctx context.Context, a Appointment) (*Appointment, error) {
	var out Appointment
	if err := r.client.Post(ctx, "/appointments", a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RepoHTTP) Update(ctx context.Context, a Appointment) error {
	return r.client.Put(ctx, "/appointments/"+a.ID, a, nil)
}

func (r *RepoHTTP) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/appointments/"+id)
}
