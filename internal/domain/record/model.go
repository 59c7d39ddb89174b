package record

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ClinicalRecord is a single consultation entry in a patient's history. The
// record date is assigned by the server at creation and never edited by the
// client.
type ClinicalRecord struct {
	ID            string  `json:"id,omitempty"`
	PatientID     string  `json:"patient_id"`
	RecordDate    string  `json:"record_date,omitempty"`
	Notes         string  `json:"notes"`
	WeightKg      float64 `json:"weight_kg"`
	BloodPressure string  `json:"blood_pressure"`
	// Treatment and PhotoURL are genuinely optional; absent is distinct from
	// empty on the wire.
	Treatment *string `json:"treatment,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
}

// Validate enforces the mandatory clinical fields. Weight may be zero —
// that is the parse fallback for unreadable input — but never negative. The
// required check on the weight field runs against the raw form text, before
// parsing.
func (r ClinicalRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required),
		validation.Field(&r.Notes, validation.Required),
		validation.Field(&r.WeightKg, validation.Min(0.0)),
		validation.Field(&r.BloodPressure, validation.Required),
	)
}
