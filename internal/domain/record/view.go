package record

import (
	"context"

	"github.com/rs/zerolog"
)

// HistoryView is the read model for a patient's clinical history. Refresh
// replaces the cache wholesale; a failed refresh keeps the prior snapshot.
type HistoryView struct {
	repo    Repository
	log     zerolog.Logger
	records []ClinicalRecord
}

func NewHistoryView(repo Repository, logger zerolog.Logger) *HistoryView {
	return &HistoryView{repo: repo, log: logger}
}

func (v *HistoryView) Refresh(ctx context.Context, patientID string) error {
	records, err := v.repo.List(ctx, patientID)
	if err != nil {
		return err
	}
	v.records = records
	v.log.Debug().Str("patient_id", patientID).Int("count", len(records)).Msg("history refreshed")
	return nil
}

// Records returns the cached history.
func (v *HistoryView) Records() []ClinicalRecord {
	return v.records
}
