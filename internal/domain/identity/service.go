package identity

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/platform/guard"
)

// Service sequences the authentication exchange and clinician registration.
// Authentication failures surface once per attempt; the caller retries by
// resubmitting, never this service.
type Service struct {
	repo  Repository
	guard *guard.Guard
	log   zerolog.Logger
}

func NewService(repo Repository, g *guard.Guard, logger zerolog.Logger) *Service {
	return &Service{repo: repo, guard: g, log: logger}
}

// Login exchanges credentials for a server-issued account snapshot. The
// credentials are validated for shape only; the server is the authority.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Account, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.Begin("identity.login"); err != nil {
		return nil, err
	}
	defer s.guard.End("identity.login")

	acct, err := s.repo.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.log.Info().Str("account_id", acct.ID).Str("role", acct.Role).Msg("logged in")
	return acct, nil
}

// RegisterDoctor creates a new clinician account. Visibility of this action
// is gated by role in the workflow; authorization stays with the remote API.
func (s *Service) RegisterDoctor(ctx context.Context, reg DoctorRegistration) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	if err := s.guard.Begin("identity.register"); err != nil {
		return err
	}
	defer s.guard.End("identity.register")

	if err := s.repo.RegisterDoctor(ctx, reg); err != nil {
		return fmt.Errorf("register doctor: %w", err)
	}
	s.log.Info().Str("email", reg.Email).Msg("doctor registered")
	return nil
}
