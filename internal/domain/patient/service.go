package patient

import (
	"context"
	"time"

	"github.com/hms/hms/internal/platform/store"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create assigns the next sequential patient ID, stamps the registration
// date with the server clock and persists the record. Absent optional fields
// are stored empty.
func (s *Service) Create(ctx context.Context, in Input) (*Patient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	p := &Patient{
		PatientID:        id,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		DateOfBirth:      in.DateOfBirth,
		Gender:           in.Gender,
		Address:          in.Address,
		BloodGroup:       in.BloodGroup,
		EmergencyContact: in.EmergencyContact,
		RegistrationDate: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, key string) (*Patient, error) {
	return s.repo.GetByKey(ctx, key)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update replaces the mutable fields of the record in full; the sequential
// ID and registration date are left untouched.
func (s *Service) Update(ctx context.Context, key string, in Input) (*Patient, error) {
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

// Search matches q case-insensitively as a substring across name, sequential
// ID, email and phone. An empty q returns the unfiltered listing.
func (s *Service) Search(ctx context.Context, q string) ([]*Patient, error) {
	f := store.Filter{}
	if q != "" {
		f = f.ContainsAny(searchFields, q)
	}
	return s.repo.Search(ctx, f)
}
