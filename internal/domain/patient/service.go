package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/platform/guard"
)

// Service orchestrates patient writes: validate locally, reject duplicate
// in-flight submissions, then hand off to the repository. Reads go through
// RosterView.
type Service struct {
	repo  Repository
	guard *guard.Guard
	log   zerolog.Logger
}

func NewService(repo Repository, g *guard.Guard, logger zerolog.Logger) *Service {
	return &Service{repo: repo, guard: g, log: logger}
}

// Save creates or updates depending on whether p carries a server id. On any
// failure nothing local changes; the caller refreshes its view only after a
// successful return.
func (s *Service) Save(ctx context.Context, p Patient) (*Patient, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.Begin("patient.save"); err != nil {
		return nil, err
	}
	defer s.guard.End("patient.save")

	if p.ID == "" {
		created, err := s.repo.Create(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("create patient: %w", err)
		}
		s.log.Info().Str("patient_id", created.ID).Msg("patient created")
		return created, nil
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	s.log.Info().Str("patient_id", p.ID).Msg("patient updated")
	return &p, nil
}

// Delete removes a patient. Confirmation happens upstream in the workflow;
// by the time this runs the destruction is already approved.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete patient: missing id")
	}
	if err := s.guard.Begin("patient.delete"); err != nil {
		return err
	}
	defer s.guard.End("patient.delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	s.log.Info().Str("patient_id", id).Msg("patient deleted")
	return nil
}
