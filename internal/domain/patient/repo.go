package patient

import "context"

// Repository is the remote API surface for patients.
type Repository interface {
	List(ctx context.Context, accountID string) ([]Patient, error)
	Create(ctx context.Context, p Patient) (*Patient, error)
	Update(ctx context.Context, p Patient) error
	Delete(ctx context.Context, id string) error
}
