package appointment

import (
	"context"

	"github.com/hms/hms/internal/platform/store"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByKey(ctx context.Context, key string) (*Appointment, error)
	// List returns appointments ordered by appointment_date descending.
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	// Search returns matches ordered by appointment_date descending.
	Search(ctx context.Context, f store.Filter) ([]*Appointment, error)
	Update(ctx context.Context, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, key string) error
	NextID(ctx context.Context) (string, error)
}
