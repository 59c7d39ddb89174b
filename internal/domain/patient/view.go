package patient

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// RosterView is the read model for the patient list screen. Refresh replaces
// the cache wholesale; there is no incremental merge and no pagination. All
// filtering happens locally against the last successful fetch.
type RosterView struct {
	repo     Repository
	log      zerolog.Logger
	patients []Patient
}

func NewRosterView(repo Repository, logger zerolog.Logger) *RosterView {
	return &RosterView{repo: repo, log: logger}
}

// Refresh refetches the roster scoped to the given account. On failure the
// previous cache is kept untouched.
func (v *RosterView) Refresh(ctx context.Context, accountID string) error {
	patients, err := v.repo.List(ctx, accountID)
	if err != nil {
		return err
	}
	v.patients = patients
	v.log.Debug().Int("count", len(patients)).Msg("roster refreshed")
	return nil
}

// Patients returns the cached roster.
func (v *RosterView) Patients() []Patient {
	return v.patients
}

// Filter narrows the cached roster by a case-insensitive substring match on
// the patient name. An empty query returns the full cache. Purely local.
func (v *RosterView) Filter(query string) []Patient {
	return filter(v.patients, query)
}

func filter(list []Patient, query string) []Patient {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	var out []Patient
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}
