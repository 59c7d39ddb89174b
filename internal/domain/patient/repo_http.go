package patient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/medisystem/medisystem/internal/platform/api"
)

// RepoHTTP implements Repository against the remote CRUD API.
type RepoHTTP struct {
	client *api.Client
}

func NewRepoHTTP(client *api.Client) *RepoHTTP {
	return &RepoHTTP{client: client}
}

func (r *RepoHTTP) List(ctx context.Context, accountID string) ([]Patient, error) {
	q := url.Values{}
	q.Set("user_id", accountID)
	var out []Patient
	if err := r.client.Get(ctx, "/patients", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RepoHTTP) Create(ctx context.Context, p Patient) (*Patient, error) {
	var out Patient
	if err := r.client.Post(ctx, "/patients", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RepoHTTP) Update(ctx context.Context, p Patient) error {
	return r.client.Put(ctx, "/patients/"+p.ID, p, nil)
}

func (r *RepoHTTP) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, fmt.Sprintf("/patients/%s", id))
}
