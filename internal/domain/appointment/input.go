package appointment

import (
	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/errs"
)

// Input carries the untyped form fields for booking or updating an
// appointment. The patient and doctor references are client-supplied store
// keys; they must be well-formed keys but are not checked for existence.
type Input struct {
	PatientKey      string `json:"patient_id"`
	DoctorKey       string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	TimeSlot        string `json:"time_slot"`
	Purpose         string `json:"purpose"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

func (in Input) Validate() error {
	if _, err := uuid.Parse(in.PatientKey); err != nil {
		return errs.Invalidf("patient_id must be a valid record key, got %q", in.PatientKey)
	}
	if _, err := uuid.Parse(in.DoctorKey); err != nil {
		return errs.Invalidf("doctor_id must be a valid record key, got %q", in.DoctorKey)
	}
	return nil
}

// fields returns the mutable document fields for an update: references,
// date, slot, purpose, notes and status. appointment_id and created_at are
// never part of an update.
func (in Input) fields() map[string]interface{} {
	return map[string]interface{}{
		"patient_id":       in.PatientKey,
		"doctor_id":        in.DoctorKey,
		"appointment_date": in.AppointmentDate,
		"time_slot":        in.TimeSlot,
		"purpose":          in.Purpose,
		"notes":            in.Notes,
		"status":           in.Status,
	}
}
