package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/store"
)

// PatientDirectory resolves patient store keys for display names.
type PatientDirectory interface {
	Get(ctx context.Context, key string) (*patient.Patient, error)
}

// DoctorDirectory resolves doctor store keys for display names.
type DoctorDirectory interface {
	Get(ctx context.Context, key string) (*doctor.Doctor, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	doctors  DoctorDirectory
}

func NewService(repo Repository, patients PatientDirectory, doctors DoctorDirectory) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors}
}

// Create books an appointment with the next sequential ID, status Scheduled
// and the server clock as creation time. The referenced patient and doctor
// are not checked for existence; a reference that never resolved renders as
// Unknown in listings, same as one deleted later.
func (s *Service) Create(ctx context.Context, in Input) (*Appointment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	a := &Appointment{
		AppointmentID:   id,
		PatientKey:      in.PatientKey,
		DoctorKey:       in.DoctorKey,
		AppointmentDate: in.AppointmentDate,
		TimeSlot:        in.TimeSlot,
		Purpose:         in.Purpose,
		Notes:           in.Notes,
		Status:          DefaultStatus,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, key string) (*Appointment, error) {
	return s.repo.GetByKey(ctx, key)
}

// List returns appointments ordered by date descending, each annotated with
// the referenced patient and doctor display names. A reference that no
// longer resolves degrades to Unknown rather than failing the listing.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*View, int, error) {
	appointments, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.annotate(ctx, appointments)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Update replaces the mutable fields in full, including the references;
// the sequential ID and creation time are left untouched.
func (s *Service) Update(ctx context.Context, key string, in Input) (*Appointment, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, key, in.fields()); err != nil {
		return nil, err
	}
	return s.repo.GetByKey(ctx, key)
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Search matches q case-insensitively on the sequential appointment ID,
// conjoined with optional exact status and date filters, ordered by date
// descending with annotated display names.
func (s *Service) Search(ctx context.Context, q, status, date string) ([]*View, error) {
	f := store.Filter{}
	if q != "" {
		f = f.Contains("appointment_id", q)
	}
	if status != "" {
		f = f.Eq("status", status)
	}
	if date != "" {
		f = f.Eq("appointment_date", date)
	}

	appointments, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, appointments)
}

func (s *Service) annotate(ctx context.Context, appointments []*Appointment) ([]*View, error) {
	views := make([]*View, 0, len(appointments))
	for _, a := range appointments {
		patientName, err := s.patientName(ctx, a.PatientKey)
		if err != nil {
			return nil, err
		}
		doctorName, err := s.doctorName(ctx, a.DoctorKey)
		if err != nil {
			return nil, err
		}
		views = append(views, &View{
			Appointment: *a,
			PatientName: patientName,
			DoctorName:  doctorName,
		})
	}
	return views, nil
}

func (s *Service) patientName(ctx context.Context, key string) (string, error) {
	p, err := s.patients.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return UnknownName, nil
	}
	if err != nil {
		return "", err
	}
	return p.FirstName + " " + p.LastName, nil
}

func (s *Service) doctorName(ctx context.Context, key string) (string, error) {
	d, err := s.doctors.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return UnknownName, nil
	}
	if err != nil {
		return "", err
	}
	return "Dr. " + d.FirstName + " " + d.LastName, nil
}
