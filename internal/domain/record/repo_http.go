package record

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

func (r *RepoHTTP) List(ctx context.Context, patientID string) ([]ClinicalRecord, error) {
	var out []ClinicalRecord
	if err := r.client.Get(ctx, "/patients/"+patientID+"/records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RepoHTTP) Create(ctx context.Context, rec ClinicalRecord) (*ClinicalRecord, error) {
	var out ClinicalRecord
	if err := r.client.Post(ctx, "/patients/"+rec.PatientID+"/records", rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RepoHTTP) Update(ctx context.Context, rec ClinicalRecord) error {
	return r.client.Put(ctx, "/medical_records/"+rec.ID, rec, nil)
}

func (r *RepoHTTP) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, "/medical_records/"+id)
}
