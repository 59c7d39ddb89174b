package appointment

import (
	"context"

	"github.com/rs/zerolog"
)

// AgendaView is the read model for a patient's appointment list. The remote
// listing is account-wide; the per-patient narrowing always happens here,
// client-side, so the view is correct even against servers that ignore
// scoping hints.
type AgendaView struct {
	repo         Repository
	log          zerolog.Logger
	appointments []Appointment
}

func NewAgendaView(repo Repository, logger zerolog.Logger) *AgendaView {
	return &AgendaView{repo: repo, log: logger}
}

// Refresh refetches the full agenda and keeps only the given patient's
// appointments. A failed fetch leaves the prior cache untouched.
func (v *AgendaView) Refresh(ctx context.Context, patientID string) error {
	all, err := v.repo.List(ctx)
	if err != nil {
		return err
	}
	var mine []Appointment
	for _, a := range all {
		if a.PatientID == patientID {
			mine = append(mine, a)
		}
	}
	v.appointments = mine
	v.log.Debug().Str("patient_id", patientID).Int("count", len(mine)).Msg("agenda refreshed")
	return nil
}

// Appointments returns the cached, patient-scoped agenda.
func (v *AgendaView) Appointments() []Appointment {
	return v.appointments
}
