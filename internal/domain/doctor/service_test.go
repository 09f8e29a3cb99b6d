package doctor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/errs"
	"github.com/hms/hms/internal/platform/seqid"
	"github.com/hms/hms/internal/platform/store"
)

// -- Mock Repository --

type mockRepo struct {
	doctors    map[string]*Doctor
	nextSeq    int
	lastFilter store.Filter
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[string]*Doctor), nextSeq: 1}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.Key = uuid.New().String()
	m.doctors[d.Key] = d
	return nil
}

func (m *mockRepo) GetByKey(_ context.Context, key string) (*Doctor, error) {
	d, ok := m.doctors[key]
	if !ok {
		return nil, fmt.Errorf("get doctor: %w", store.ErrNotFound)
	}
	return d, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Doctor, int, error) {
	var result []*Doctor
	for _, d := range m.doctors {
		result = append(result, d)
	}
	return result, len(result), nil
}

func (m *mockRepo) Search(_ context.Context, f store.Filter) ([]*Doctor, error) {
	m.lastFilter = f
	var result []*Doctor
	for _, d := range m.doctors {
		result = append(result, d)
	}
	return result, nil
}

func (m *mockRepo) Update(_ context.Context, key string, fields map[string]interface{}) error {
	d, ok := m.doctors[key]
	if !ok {
		return fmt.Errorf("update doctor: %w", store.ErrNotFound)
	}
	if v, ok := fields["availability"].(string); ok {
		d.Availability = v
	}
	if v, ok := fields["status"].(string); ok {
		d.Status = v
	}
	if v, ok := fields["experience"].(int); ok {
		d.Experience = v
	}
	if v, ok := fields["consultation_fee"].(float64); ok {
		d.ConsultationFee = v
	}
	if _, ok := fields["doctor_id"]; ok {
		return fmt.Errorf("doctor_id must not appear in an update")
	}
	return nil
}

func (m *mockRepo) Delete(_ context.Context, key string) error {
	if _, ok := m.doctors[key]; !ok {
		return fmt.Errorf("delete doctor: %w", store.ErrNotFound)
	}
	delete(m.doctors, key)
	return nil
}

func (m *mockRepo) Distinct(_ context.Context, field string) ([]string, error) {
	seen := make(map[string]bool)
	for _, d := range m.doctors {
		switch field {
		case "specialization":
			if d.Specialization != "" {
				seen[d.Specialization] = true
			}
		case "department":
			if d.Department != "" {
				seen[d.Department] = true
			}
		}
	}
	var values []string
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func (m *mockRepo) NextID(_ context.Context) (string, error) {
	id := seqid.Doctor.Render(m.nextSeq)
	m.nextSeq++
	return id, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo), repo
}

// -- Tests --

func TestService_Create_Defaults(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Create(context.Background(), Input{
		FirstName:      "Meera",
		LastName:       "Nair",
		Specialization: "Cardiology",
		Experience:     "12",
		Availability:   "On Leave",
		Status:         "Inactive",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.DoctorID != "DOC000001" {
		t.Errorf("expected DOC000001, got %s", d.DoctorID)
	}
	if d.Availability != DefaultAvailability {
		t.Errorf("expected availability forced to %s on create, got %s",
			DefaultAvailability, d.Availability)
	}
	if d.Status != DefaultStatus {
		t.Errorf("expected status forced to %s on create, got %s",
			DefaultStatus, d.Status)
	}
	if d.Experience != 12 {
		t.Errorf("expected experience 12, got %d", d.Experience)
	}
}

func TestService_Create_BadExperience(t *testing.T) {
	svc, _ := newTestService()

	for _, exp := range []string{"twelve", "-3", "1.5"} {
		_, err := svc.Create(context.Background(), Input{FirstName: "M", Experience: exp})
		if !errors.Is(err, errs.ErrInvalidInput) {
			t.Errorf("experience %q: expected invalid input error, got %v", exp, err)
		}
	}
}

func TestService_Create_BadFee(t *testing.T) {
	svc, _ := newTestService()

	for _, fee := range []string{"free", "-100"} {
		_, err := svc.Create(context.Background(), Input{FirstName: "M", ConsultationFee: fee})
		if !errors.Is(err, errs.ErrInvalidInput) {
			t.Errorf("fee %q: expected invalid input error, got %v", fee, err)
		}
	}
}

func TestService_Create_EmptyNumericFields(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Create(context.Background(), Input{FirstName: "Meera"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Experience != 0 || d.ConsultationFee != 0 {
		t.Errorf("expected zero defaults for absent numeric fields, got %d/%v",
			d.Experience, d.ConsultationFee)
	}
}

func TestService_Update_AvailabilityEditable(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Create(context.Background(), Input{FirstName: "Meera"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(context.Background(), d.Key, Input{
		FirstName:    "Meera",
		Availability: "On Leave",
		Status:       "Inactive",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Availability != "On Leave" {
		t.Errorf("expected availability editable on update, got %s", updated.Availability)
	}
	if updated.Status != "Inactive" {
		t.Errorf("expected status editable on update, got %s", updated.Status)
	}
	if updated.DoctorID != "DOC000001" {
		t.Errorf("expected doctor ID unchanged, got %s", updated.DoctorID)
	}
}

func TestService_Search_Conjunction(t *testing.T) {
	svc, repo := newTestService()

	if _, err := svc.Search(context.Background(), "meera", "Cardiology", "OPD"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sql, args, _ := repo.lastFilter.SQL(1)
	if !strings.Contains(sql, "doc->>'specialization' =") {
		t.Errorf("expected exact specialization filter, got %s", sql)
	}
	if !strings.Contains(sql, "doc->>'department' =") {
		t.Errorf("expected exact department filter, got %s", sql)
	}
	if !strings.Contains(sql, "doc->>'doctor_id' ILIKE") {
		t.Errorf("expected free-text match on doctor_id, got %s", sql)
	}
	if len(args) != 6 {
		t.Errorf("expected 4 contains args plus 2 exact args, got %v", args)
	}
}

func TestService_Search_NoCriteria(t *testing.T) {
	svc, repo := newTestService()

	if _, err := svc.Search(context.Background(), "", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.lastFilter.IsEmpty() {
		t.Error("expected empty criteria to search with an empty filter")
	}
}

func TestService_Specializations(t *testing.T) {
	svc, _ := newTestService()

	for _, spec := range []string{"Cardiology", "Neurology", "Cardiology"} {
		if _, err := svc.Create(context.Background(), Input{FirstName: "M", Specialization: spec}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	specs, err := svc.Specializations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 {
		t.Errorf("expected 2 distinct specializations, got %v", specs)
	}
}
