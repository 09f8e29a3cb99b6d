package doctor

import (
	"github.com/hms/hms/internal/platform/store"
)

// Collection is the record-store collection holding doctor documents.
const Collection = "doctors"

// searchFields are the document fields free-text doctor search matches on.
var searchFields = []string{"first_name", "last_name", "doctor_id", "specialization"}

const (
	DefaultAvailability = "Available"
	DefaultStatus       = "Active"
)

// Doctor is the typed view of a doctor document.
type Doctor struct {
	Key             string  `json:"id"`
	DoctorID        string  `json:"doctor_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Specialization  string  `json:"specialization"`
	Department      string  `json:"department"`
	Qualification   string  `json:"qualification"`
	Experience      int     `json:"experience"`
	ConsultationFee float64 `json:"consultation_fee"`
	Availability    string  `json:"availability"`
	Status          string  `json:"status"`
}

func (d *Doctor) doc() map[string]interface{} {
	return map[string]interface{}{
		"doctor_id":        d.DoctorID,
		"first_name":       d.FirstName,
		"last_name":        d.LastName,
		"email":            d.Email,
		"phone":            d.Phone,
		"specialization":   d.Specialization,
		"department":       d.Department,
		"qualification":    d.Qualification,
		"experience":       d.Experience,
		"consultation_fee": d.ConsultationFee,
		"availability":     d.Availability,
		"status":           d.Status,
	}
}

func fromDoc(d *store.Document) *Doctor {
	return &Doctor{
		Key:             d.Key.String(),
		DoctorID:        docString(d.Data, "doctor_id"),
		FirstName:       docString(d.Data, "first_name"),
		LastName:        docString(d.Data, "last_name"),
		Email:           docString(d.Data, "email"),
		Phone:           docString(d.Data, "phone"),
		Specialization:  docString(d.Data, "specialization"),
		Department:      docString(d.Data, "department"),
		Qualification:   docString(d.Data, "qualification"),
		Experience:      docInt(d.Data, "experience"),
		ConsultationFee: docFloat(d.Data, "consultation_fee"),
		Availability:    docString(d.Data, "availability"),
		Status:          docString(d.Data, "status"),
	}
}

func fromDocs(docs []*store.Document) []*Doctor {
	doctors := make([]*Doctor, 0, len(docs))
	for _, d := range docs {
		doctors = append(doctors, fromDoc(d))
	}
	return doctors
}

func docString(data map[string]interface{}, field string) string {
	s, _ := data[field].(string)
	return s
}

// JSON numbers decode as float64 regardless of the field's nominal type.
func docInt(data map[string]interface{}, field string) int {
	f, _ := data[field].(float64)
	return int(f)
}

func docFloat(data map[string]interface{}, field string) float64 {
	f, _ := data[field].(float64)
	return f
}
