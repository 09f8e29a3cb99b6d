package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/errs"
	"github.com/hms/hms/internal/platform/seqid"
	"github.com/hms/hms/internal/platform/store"
)

// -- Mock Repository and Directories --

type mockRepo struct {
	appointments map[string]*Appointment
	nextSeq      int
	lastFilter   store.Filter
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: make(map[string]*Appointment), nextSeq: 1}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.Key = uuid.New().String()
	m.appointments[a.Key] = a
	return nil
}

func (m *mockRepo) GetByKey(_ context.Context, key string) (*Appointment, error) {
	a, ok := m.appointments[key]
	if !ok {
		return nil, fmt.Errorf("get appointment: %w", store.ErrNotFound)
	}
	return a, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appointments {
		result = append(result, a)
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, f store.Filter) ([]*Appointment, error) {
	m.lastFilter = f
	var result []*Appointment
	for _, a := range m.appointments {
		result = append(result, a)
	}
	return result, nil
}

func (m *mockRepo) Update(_ context.Context, key string, fields map[string]interface{}) error {
	a, ok := m.appointments[key]
	if !ok {
		return fmt.Errorf("update appointment: %w", store.ErrNotFound)
	}
	if v, ok := fields["status"].(string); ok {
		a.Status = v
	}
	if v, ok := fields["time_slot"].(string); ok {
		a.TimeSlot = v
	}
	if _, ok := fields["appointment_id"]; ok {
		return fmt.Errorf("appointment_id must not appear in an update")
	}
	if _, ok := fields["created_at"]; ok {
		return fmt.Errorf("created_at must not appear in an update")
	}
	return nil
}

func (m *mockRepo) Delete(_ context.Context, key string) error {
	if _, ok := m.appointments[key]; !ok {
		return fmt.Errorf("delete appointment: %w", store.ErrNotFound)
	}
	delete(m.appointments, key)
	return nil
}

func (m *mockRepo) NextID(_ context.Context) (string, error) {
	id := seqid.Appointment.Render(m.nextSeq)
	m.nextSeq++
	return id, nil
}

type mockPatients struct {
	patients map[string]*patient.Patient
}

func (m *mockPatients) Get(_ context.Context, key string) (*patient.Patient, error) {
	p, ok := m.patients[key]
	if !ok {
		return nil, fmt.Errorf("get patient: %w", store.ErrNotFound)
	}
	return p, nil
}

type mockDoctors struct {
	doctors map[string]*doctor.Doctor
}

func (m *mockDoctors) Get(_ context.Context, key string) (*doctor.Doctor, error) {
	d, ok := m.doctors[key]
	if !ok {
		return nil, fmt.Errorf("get doctor: %w", store.ErrNotFound)
	}
	return d, nil
}

type fixture struct {
	svc      *Service
	repo     *mockRepo
	patients *mockPatients
	doctors  *mockDoctors
}

func newFixture() *fixture {
	repo := newMockRepo()
	patients := &mockPatients{patients: make(map[string]*patient.Patient)}
	doctors := &mockDoctors{doctors: make(map[string]*doctor.Doctor)}
	return &fixture{
		svc:      NewService(repo, patients, doctors),
		repo:     repo,
		patients: patients,
		doctors:  doctors,
	}
}

func (f *fixture) addPatient(first, last string) string {
	key := uuid.New().String()
	f.patients.patients[key] = &patient.Patient{Key: key, FirstName: first, LastName: last}
	return key
}

func (f *fixture) addDoctor(first, last string) string {
	key := uuid.New().String()
	f.doctors.doctors[key] = &doctor.Doctor{Key: key, FirstName: first, LastName: last}
	return key
}

// -- Tests --

func TestService_Create(t *testing.T) {
	f := newFixture()
	patientKey := f.addPatient("Asha", "Verma")
	doctorKey := f.addDoctor("Meera", "Nair")

	a, err := f.svc.Create(context.Background(), Input{
		PatientKey:      patientKey,
		DoctorKey:       doctorKey,
		AppointmentDate: "2026-09-01",
		TimeSlot:        "10:00 AM",
		Purpose:         "Consultation",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.AppointmentID != "APT000001" {
		t.Errorf("expected APT000001, got %s", a.AppointmentID)
	}
	if a.Status != DefaultStatus {
		t.Errorf("expected status %s, got %s", DefaultStatus, a.Status)
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected creation time stamped")
	}
}

func TestService_Create_BadReferences(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), Input{
		PatientKey: "not-a-key",
		DoctorKey:  uuid.New().String(),
	})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}

	_, err = f.svc.Create(context.Background(), Input{
		PatientKey: uuid.New().String(),
		DoctorKey:  "",
	})
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected invalid input error, got %v", err)
	}
}

func TestService_Create_DanglingReferenceAccepted(t *testing.T) {
	// References are well-formed keys but never checked for existence.
	f := newFixture()

	a, err := f.svc.Create(context.Background(), Input{
		PatientKey: uuid.New().String(),
		DoctorKey:  uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.AppointmentID != "APT000001" {
		t.Errorf("expected booking to succeed, got %s", a.AppointmentID)
	}
}

func TestService_List_AnnotatesNames(t *testing.T) {
	f := newFixture()
	patientKey := f.addPatient("Asha", "Verma")
	doctorKey := f.addDoctor("Meera", "Nair")

	if _, err := f.svc.Create(context.Background(), Input{
		PatientKey: patientKey,
		DoctorKey:  doctorKey,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, total, err := f.svc.List(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("expected 1 appointment, got %d", total)
	}
	if views[0].PatientName != "Asha Verma" {
		t.Errorf("expected patient name Asha Verma, got %s", views[0].PatientName)
	}
	if views[0].DoctorName != "Dr. Meera Nair" {
		t.Errorf("expected doctor name Dr. Meera Nair, got %s", views[0].DoctorName)
	}
}

func TestService_List_UnknownOnDanglingReference(t *testing.T) {
	f := newFixture()
	doctorKey := f.addDoctor("Meera", "Nair")

	if _, err := f.svc.Create(context.Background(), Input{
		PatientKey: uuid.New().String(),
		DoctorKey:  doctorKey,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, _, err := f.svc.List(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views[0].PatientName != UnknownName {
		t.Errorf("expected %s for dangling patient reference, got %s",
			UnknownName, views[0].PatientName)
	}
	if views[0].DoctorName != "Dr. Meera Nair" {
		t.Errorf("expected resolved doctor name, got %s", views[0].DoctorName)
	}
}

func TestService_Update_PreservesIdentity(t *testing.T) {
	f := newFixture()
	patientKey := f.addPatient("Asha", "Verma")
	doctorKey := f.addDoctor("Meera", "Nair")

	a, err := f.svc.Create(context.Background(), Input{
		PatientKey: patientKey,
		DoctorKey:  doctorKey,
		TimeSlot:   "10:00 AM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created := a.CreatedAt

	updated, err := f.svc.Update(context.Background(), a.Key, Input{
		PatientKey: patientKey,
		DoctorKey:  doctorKey,
		TimeSlot:   "11:30 AM",
		Status:     "Completed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TimeSlot != "11:30 AM" || updated.Status != "Completed" {
		t.Errorf("expected slot and status updated, got %s/%s",
			updated.TimeSlot, updated.Status)
	}
	if updated.AppointmentID != "APT000001" {
		t.Errorf("expected appointment ID unchanged, got %s", updated.AppointmentID)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Error("expected creation time unchanged")
	}
}

func TestService_Delete_ThenGet(t *testing.T) {
	f := newFixture()

	a, err := f.svc.Create(context.Background(), Input{
		PatientKey: uuid.New().String(),
		DoctorKey:  uuid.New().String(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.svc.Delete(context.Background(), a.Key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), a.Key); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestService_Search_Filter(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Search(context.Background(), "APT", "Scheduled", "2026-09-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, args, _ := f.repo.lastFilter.SQL(1)
	if !strings.Contains(sql, "doc->>'appointment_id' ILIKE") {
		t.Errorf("expected free-text match on appointment_id, got %s", sql)
	}
	if !strings.Contains(sql, "doc->>'status' =") {
		t.Errorf("expected exact status filter, got %s", sql)
	}
	if !strings.Contains(sql, "doc->>'appointment_date' =") {
		t.Errorf("expected exact date filter, got %s", sql)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %v", args)
	}
}
