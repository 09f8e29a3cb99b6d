package patient

import (
	"time"

	"github.com/hms/hms/internal/platform/store"
)

// Collection is the record-store collection holding patient documents.
const Collection = "patients"

// searchFields are the document fields free-text patient search matches on.
var searchFields = []string{"first_name", "last_name", "patient_id", "email", "phone"}

// Patient is the typed view of a patient document. Key is the store key
// rendered as a display string; PatientID is the human-facing sequential ID.
type Patient struct {
	Key              string    `json:"id"`
	PatientID        string    `json:"patient_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	Address          string    `json:"address"`
	BloodGroup       string    `json:"blood_group"`
	EmergencyContact string    `json:"emergency_contact"`
	RegistrationDate time.Time `json:"registration_date"`
}

func (p *Patient) doc() map[string]interface{} {
	return map[string]interface{}{
		"patient_id":        p.PatientID,
		"first_name":        p.FirstName,
		"last_name":         p.LastName,
		"email":             p.Email,
		"phone":             p.Phone,
		"date_of_birth":     p.DateOfBirth,
		"gender":            p.Gender,
		"address":           p.Address,
		"blood_group":       p.BloodGroup,
		"emergency_contact": p.EmergencyContact,
		"registration_date": p.RegistrationDate.Format(time.RFC3339),
	}
}

func fromDoc(d *store.Document) *Patient {
	p := &Patient{
		Key:              d.Key.String(),
		PatientID:        docString(d.Data, "patient_id"),
		FirstName:        docString(d.Data, "first_name"),
		LastName:         docString(d.Data, "last_name"),
		Email:            docString(d.Data, "email"),
		Phone:            docString(d.Data, "phone"),
		DateOfBirth:      docString(d.Data, "date_of_birth"),
		Gender:           docString(d.Data, "gender"),
		Address:          docString(d.Data, "address"),
		BloodGroup:       docString(d.Data, "blood_group"),
		EmergencyContact: docString(d.Data, "emergency_contact"),
	}
	if ts, err := time.Parse(time.RFC3339, docString(d.Data, "registration_date")); err == nil {
		p.RegistrationDate = ts
	}
	return p
}

func fromDocs(docs []*store.Document) []*Patient {
	patients := make([]*Patient, 0, len(docs))
	for _, d := range docs {
		patients = append(patients, fromDoc(d))
	}
	return patients
}

func docString(data map[string]interface{}, field string) string {
	s, _ := data[field].(string)
	return s
}
