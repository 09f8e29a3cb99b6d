package patient

import "github.com/hms/hms/internal/platform/errs"

// validGenders mirrors the registration form's gender choices.
var validGenders = map[string]bool{
	"Male":   true,
	"Female": true,
	"Other":  true,
}

// Input carries the untyped form fields for a patient create or update.
// Absent fields are stored empty rather than rejected.
type Input struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	BloodGroup       string `json:"blood_group"`
	EmergencyContact string `json:"emergency_contact"`
}

// Validate is the single boundary check before input reaches the service.
func (in Input) Validate() error {
	if in.Gender != "" && !validGenders[in.Gender] {
		return errs.Invalidf("gender must be Male, Female or Other, got %q", in.Gender)
	}
	return nil
}

// fields returns the mutable document fields; patient_id and
// registration_date are never part of an update.
func (in Input) fields() map[string]interface{} {
	return map[string]interface{}{
		"first_name":        in.FirstName,
		"last_name":         in.LastName,
		"email":             in.Email,
		"phone":             in.Phone,
		"date_of_birth":     in.DateOfBirth,
		"gender":            in.Gender,
		"address":           in.Address,
		"blood_group":       in.BloodGroup,
		"emergency_contact": in.EmergencyContact,
	}
}
