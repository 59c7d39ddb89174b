package appointment

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/medisystem/medisystem/internal/input"
)

// Appointment is a scheduled visit. DoctorName is stamped from the session
// account whenever the appointment is created or edited; it is never typed
// by the user.
type Appointment struct {
	ID         string `json:"id,omitempty"`
	PatientID  string `json:"patient_id"`
	When       string `json:"appointment_date"` // "2006-01-02T15:04:05"
	Reason     string `json:"reason"`
	DoctorName string `json:"doctor_name"`
}

// Validate checks the combined date-time and the scheduling fields. The
// reason is free text and may be empty.
func (a Appointment) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.PatientID, validation.Required),
		validation.Field(&a.When, validation.Required, validation.Date("2006-01-02T15:04:05")),
		validation.Field(&a.DoctorName, validation.Required),
	)
}

// ReminderMessage builds the patient-facing reminder handed to the messaging
// deep link after a successful save. Every scheduling fact appears in the
// text.
func ReminderMessage(patientName string, a Appointment) string {
	date, tm := input.SplitDateTime(a.When)
	return fmt.Sprintf(
		"Hola %s, le recuerdo su cita médica el %s a las %s hrs con %s. Motivo: %s. Saludos.",
		patientName, date, tm, a.DoctorName, a.Reason,
	)
}
