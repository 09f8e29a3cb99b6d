package patient

import (
	"context"

	"github.com/hms/hms/internal/platform/store"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByKey(ctx context.Context, key string) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Search(ctx context.Context, f store.Filter) ([]*Patient, error)
	Update(ctx context.Context, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, key string) error
	NextID(ctx context.Context) (string, error)
}
