package appointment

import "context"

// Repository is the remote API surface for appointments. The listing is
// account-wide; per-patient narrowing is a local concern of AgendaView.
type Repository interface {
	List(ctx context.Context) ([]Appointment, error)
	Create(ctx context.Context, a Appointment) (*Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
}
