package doctor

import (
	"strconv"

	"github.com/hms/hms/internal/platform/errs"
)

// Input carries the untyped form fields for a doctor create or update.
// Experience and consultation fee arrive as strings and are parsed at this
// boundary; non-numeric or negative input fails with an invalid-input error
// instead of propagating a raw parse failure.
type Input struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Specialization  string `json:"specialization"`
	Department      string `json:"department"`
	Qualification   string `json:"qualification"`
	Experience      string `json:"experience"`
	ConsultationFee string `json:"consultation_fee"`
	Availability    string `json:"availability"`
	Status          string `json:"status"`
}

type parsedInput struct {
	experience      int
	consultationFee float64
}

func (in Input) parse() (parsedInput, error) {
	var p parsedInput

	if in.Experience != "" {
		n, err := strconv.Atoi(in.Experience)
		if err != nil {
			return p, errs.Invalidf("experience must be a whole number, got %q", in.Experience)
		}
		if n < 0 {
			return p, errs.Invalidf("experience must not be negative, got %d", n)
		}
		p.experience = n
	}

	if in.ConsultationFee != "" {
		fee, err := strconv.ParseFloat(in.ConsultationFee, 64)
		if err != nil {
			return p, errs.Invalidf("consultation_fee must be a number, got %q", in.ConsultationFee)
		}
		if fee < 0 {
			return p, errs.Invalidf("consultation_fee must not be negative, got %v", fee)
		}
		p.consultationFee = fee
	}

	return p, nil
}

// fields returns the mutable document fields for an update; doctor_id is
// never part of an update. Availability and status are staff-editable here,
// unlike the patient record's fixed fields.
func (in Input) fields(p parsedInput) map[string]interface{} {
	return map[string]interface{}{
		"first_name":       in.FirstName,
		"last_name":        in.LastName,
		"email":            in.Email,
		"phone":            in.Phone,
		"specialization":   in.Specialization,
		"department":       in.Department,
		"qualification":    in.Qualification,
		"experience":       p.experience,
		"consultation_fee": p.consultationFee,
		"availability":     in.Availability,
		"status":           in.Status,
	}
}
