package doctor

import (
	"context"

	"github.com/hms/hms/internal/platform/store"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create assigns the next sequential doctor ID and persists the record.
// Availability and status start at their defaults regardless of input; they
// become staff-editable on update.
func (s *Service) Create(ctx context.Context, in Input) (*Doctor, error) {
	parsed, err := in.parse()
	if err != nil {
		return nil, err
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	d := &Doctor{
		DoctorID:        id,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		Specialization:  in.Specialization,
		Department:      in.Department,
		Qualification:   in.Qualification,
		Experience:      parsed.experience,
		ConsultationFee: parsed.consultationFee,
		Availability:    DefaultAvailability,
		Status:          DefaultStatus,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, key string) (*Doctor, error) {
	return s.repo.GetByKey(ctx, key)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update replaces the mutable fields in full, including availability and
// status; the sequential ID is left untouched.
func (s *Service) Update(ctx context.Context, key string, in Input) (*Doctor, error) {
	parsed, err := in.parse()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, key, in.fields(parsed)); err != nil {
		return nil, err
	}
	return s.repo.GetByKey(ctx, key)
}

func (s *Service) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Search matches q case-insensitively across name, sequential ID and
// specialization, conjoined with optional exact specialization and
// department filters. Empty criteria return the unfiltered listing.
func (s *Service) Search(ctx context.Context, q, specialization, department string) ([]*Doctor, error) {
	f := store.Filter{}
	if q != "" {
		f = f.ContainsAny(searchFields, q)
	}
	if specialization != "" {
		f = f.Eq("specialization", specialization)
	}
	if department != "" {
		f = f.Eq("department", department)
	}
	return s.repo.Search(ctx, f)
}

// Specializations returns the distinct specializations present in the
// collection, for populating filter choices.
func (s *Service) Specializations(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "specialization")
}

// Departments returns the distinct departments present in the collection.
func (s *Service) Departments(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "department")
}
