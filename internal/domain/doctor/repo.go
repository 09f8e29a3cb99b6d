package doctor

import (
	"context"

	"github.com/hms/hms/internal/platform/store"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByKey(ctx context.Context, key string) (*Doctor, error)
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	Search(ctx context.Context, f store.Filter) ([]*Doctor, error)
	Update(ctx context.Context, key string, fields map[string]interface{}) error
	Delete(ctx context.Context, key string) error
	Distinct(ctx context.Context, field string) ([]string, error)
	NextID(ctx context.Context) (string, error)
}
