package record

import "context"

// Repository is the remote API surface for clinical records. Listing and
// creation are nested under the owning patient; edits address the record
// directly.
type Repository interface {
	List(ctx context.Context, patientID string) ([]ClinicalRecord, error)
	Create(ctx context.Context, rec ClinicalRecord) (*ClinicalRecord, error)
	Update(ctx context.Context, rec ClinicalRecord) error
	Delete(ctx context.Context, id string) error
}
