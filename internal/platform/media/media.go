// Package media abstracts the device camera and its permission gate. The
// capture pipeline itself is a platform collaborator; the client only needs
// the grant decision and the resulting photo reference.
package media

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrPermissionDenied reports that camera/media access was refused. Save
// flows degrade to continuing without a photo instead of blocking.
var ErrPermissionDenied = errors.New("camera permission denied")

// ErrCanceled reports that the user backed out of the capture screen.
var ErrCanceled = errors.New("capture canceled")

// Camera is the device capture collaborator.
type Camera interface {
	// RequestPermission queries (and if needed prompts for) camera access.
	RequestPermission(ctx context.Context) (bool, error)
	// Capture opens the camera and returns a reference to the taken photo.
	// Only valid after RequestPermission reported a grant.
	Capture(ctx context.Context) (string, error)
}

// TryCapture runs the permission-then-capture sequence. Denied permission or
// a canceled capture yields (nil, ErrPermissionDenied/ErrCanceled) so the
// caller can report it and proceed without a photo; only unexpected platform
// failures surface as other errors.
func TryCapture(ctx context.Context, cam Camera, logger zerolog.Logger) (*string, error) {
	granted, err := cam.RequestPermission(ctx)
	if err != nil {
		return nil, err
	}
	if !granted {
		logger.Info().Msg("camera permission denied, continuing without photo")
		return nil, ErrPermissionDenied
	}
	ref, err := cam.Capture(ctx)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
