package patient

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Patient is a member of the practice roster. The id is server-assigned and
// opaque; the client never fabricates one.
type Patient struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	ContactInfo string `json:"contact_info"`
	// OwnerID scopes the patient to the clinician account that registered it.
	OwnerID string `json:"owning_account_id"`
}

// Validate runs the client-side format checks before any network call. The
// birth date must already be a complete masked value.
func (p Patient) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.BirthDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&p.OwnerID, validation.Required),
	)
}
