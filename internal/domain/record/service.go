package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/platform/guard"
	"github.com/medisystem/medisystem/internal/platform/media"
)

// Service orchestrates clinical record writes and the optional photo
// attachment. Reads go through HistoryView.
type Service struct {
	repo   Repository
	camera media.Camera
	guard  *guard.Guard
	log    zerolog.Logger
}

func NewService(repo Repository, camera media.Camera, g *guard.Guard, logger zerolog.Logger) *Service {
	return &Service{repo: repo, camera: camera, guard: g, log: logger}
}

// Save creates or updates depending on whether rec carries a server id. The
// record date is never set here; the server stamps it on creation.
func (s *Service) Save(ctx context.Context, rec ClinicalRecord) (*ClinicalRecord, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := s.guard.Begin("record.save"); err != nil {
		return nil, err
	}
	defer s.guard.End("record.save")

	if rec.ID == "" {
		created, err := s.repo.Create(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("create record: %w", err)
		}
		s.log.Info().Str("record_id", created.ID).Str("patient_id", created.PatientID).Msg("record created")
		return created, nil
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	s.log.Info().Str("record_id", rec.ID).Msg("record updated")
	return &rec, nil
}

// Delete removes a record after the workflow has confirmed the action.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("delete record: missing id")
	}
	if err := s.guard.Begin("record.delete"); err != nil {
		return err
	}
	defer s.guard.End("record.delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.log.Info().Str("record_id", id).Msg("record deleted")
	return nil
}

// CapturePhoto asks the camera for a photo to attach. Denied permission or a
// cancelled capture degrades gracefully: the record simply has no photo and
// the save proceeds without one.
func (s *Service) CapturePhoto(ctx context.Context) *string {
	photo, err := media.TryCapture(ctx, s.camera, s.log)
	if err != nil {
		s.log.Warn().Err(err).Msg("photo capture skipped")
		return nil
	}
	return photo
}
