package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/domain/identity"
	"github.com/medisystem/medisystem/internal/platform/guard"
)

// Service orchestrates appointment writes. Every save stamps the acting
// clinician's name onto the appointment, overwriting whatever the form
// carried.
type Service struct {
	repo  Repository
	guard *guard.Guard
	log   zerolog.Logger
}

func NewService(repo Repository, g *guard.Guard, logger zerolog.Logger) *Service {
	return &Service{repo: repo, guard: g, log: logger}
}

// Save creates or updates depending on whether a carries a server id. The
// actor is the logged-in account; its full name becomes the appointment's
// doctor name.
func (s *Service) Save(ctx context.Context, a Appointment, actor identity.Account) (*Appointment, error) {
	a.DoctorName = actor.FullName
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.Begin("appointment.save"); err != nil {
		return nil, err
	}
	defer s.guard.End("appointment.save")

	if a.ID == "" {
		created, err := s.repo.Create(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("create appointment: %w", err)
		}
		s.log.Info().Str("appointment_id", created.ID).Str("patient_id", created.PatientID).Msg("appointment created")
		return created, nil
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	s.log.Info().Str("appointment_id", a.ID).Msg("appointment updated")
	return &a, nil
}

// Delete removes an appointment after the workflow has confirmed the action.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete appointment: missing id")
	}
	if err := s.guard.Begin("appointment.delete"); err != nil {
		return err
	}
	defer s.guard.End("appointment.delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	s.log.Info().Str("appointment_id", id).Msg("appointment deleted")
	return nil
}
