// Package record contains the managed record entity and its validation rules.
// Records are owned by the backend; the client holds a read-through cache
// rebuilt after every mutation.
package record

import "github.com/formdesk/formdesk/internal/validation"

// Record is a single managed entity subject to CRUD.
// The ID is server-assigned and opaque to the client.
type Record struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	PIN     string `json:"pin"`
	Phone   string `json:"phone"`
}

// Fields holds the writable subset of a record, as submitted by a form.
type Fields struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	PIN     string `json:"pin"`
	Phone   string `json:"phone"`
}

const (
	maxNameLen    = 120
	maxAddressLen = 500
	pinDigits     = 6
	phoneDigits   = 10
)

// Validate checks the writable fields and returns per-field error
// messages keyed by form field name. An empty map means the fields
// are acceptable to submit; the server remains the final authority.
func (f Fields) Validate() map[string]string {
	v := validation.New()
	v.Validate("name", f.Name, validation.Required("Name", maxNameLen))
	v.Validate("address", f.Address, validation.Required("Address", maxAddressLen))
	v.Validate("pin", f.PIN,
		validation.Required("PIN", maxNameLen),
		validation.DigitsExact("PIN", pinDigits))
	v.Validate("phone", f.Phone,
		validation.Required("Phone number", maxNameLen),
		validation.DigitsExact("Phone number", phoneDigits))
	return v.Errors()
}
