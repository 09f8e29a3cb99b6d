package appointment

import (
	"time"

	"github.com/hms/hms/internal/platform/store"
)

// Collection is the record-store collection holding appointment documents.
const Collection = "appointments"

const (
	// DefaultStatus is assigned to every newly booked appointment.
	DefaultStatus = "Scheduled"

	// UnknownName is rendered when an appointment's patient or doctor
	// reference no longer resolves.
	UnknownName = "Unknown"
)

// Appointment is the typed view of an appointment document. PatientKey and
// DoctorKey are store keys of the referenced records; their existence is not
// re-checked after booking, so they can dangle.
type Appointment struct {
	Key             string    `json:"id"`
	AppointmentID   string    `json:"appointment_id"`
	PatientKey      string    `json:"patient_id"`
	DoctorKey       string    `json:"doctor_id"`
	AppointmentDate string    `json:"appointment_date"`
	TimeSlot        string    `json:"time_slot"`
	Purpose         string    `json:"purpose"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// View is an appointment annotated with denormalized display names resolved
// at read time.
type View struct {
	Appointment
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}

func (a *Appointment) doc() map[string]interface{} {
	return map[string]interface{}{
		"appointment_id":   a.AppointmentID,
		"patient_id":       a.PatientKey,
		"doctor_id":        a.DoctorKey,
		"appointment_date": a.AppointmentDate,
		"time_slot":        a.TimeSlot,
		"purpose":          a.Purpose,
		"notes":            a.Notes,
		"status":           a.Status,
		"created_at":       a.CreatedAt.Format(time.RFC3339),
	}
}

func fromDoc(d *store.Document) *Appointment {
	a := &Appointment{
		Key:             d.Key.String(),
		AppointmentID:   docString(d.Data, "appointment_id"),
		PatientKey:      docString(d.Data, "patient_id"),
		DoctorKey:       docString(d.Data, "doctor_id"),
		AppointmentDate: docString(d.Data, "appointment_date"),
		TimeSlot:        docString(d.Data, "time_slot"),
		Purpose:         docString(d.Data, "purpose"),
		Notes:           docString(d.Data, "notes"),
		Status:          docString(d.Data, "status"),
	}
	if ts, err := time.Parse(time.RFC3339, docString(d.Data, "created_at")); err == nil {
		a.CreatedAt = ts
	}
	return a
}

func fromDocs(docs []*store.Document) []*Appointment {
	appointments := make([]*Appointment, 0, len(docs))
	for _, d := range docs {
		appointments = append(appointments, fromDoc(d))
	}
	return appointments
}

func docString(data map[string]interface{}, field string) string {
	s, _ := data[field].(string)
	return s
}
