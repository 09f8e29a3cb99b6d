package staff

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/errs"
	"github.com/hms/hms/internal/platform/store"
)

var (
	ErrUsernameTaken = errors.New("a user with this username already exists")

	// ErrInvalidCredentials is deliberately uniform for unknown usernames and
	// wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const minPasswordLen = 8

// Counter is the slice of the record store the dashboard needs.
type Counter interface {
	Count(ctx context.Context, collection string, f store.Filter) (int, error)
}

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
	counts Counter
}

func NewService(repo Repository, tokens *auth.TokenIssuer, counts Counter) *Service {
	return &Service{repo: repo, tokens: tokens, counts: counts}
}

// Signup creates a staff account and returns the user with a session token.
func (s *Service) Signup(ctx context.Context, username, password string) (*User, string, error) {
	if username == "" {
		return nil, "", errs.Invalidf("username is required")
	}
	if len(password) < minPasswordLen {
		return nil, "", errs.Invalidf("password must be at least %d characters", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &User{Username: username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}
	u.CreatedAt = time.Now().UTC()

	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Dashboard returns the staff dashboard counts: total patients, total
// doctors, and appointments dated today.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	patients, err := s.counts.Count(ctx, patient.Collection, store.Filter{})
	if err != nil {
		return nil, err
	}
	doctors, err := s.counts.Count(ctx, doctor.Collection, store.Filter{})
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Format("2006-01-02")
	todayAppointments, err := s.counts.Count(ctx, appointment.Collection,
		store.Filter{}.Eq("appointment_date", today))
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalPatients:     patients,
		TotalDoctors:      doctors,
		TodayAppointments: todayAppointments,
	}, nil
}
