package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/seqid"
	"github.com/hms/hms/internal/platform/store"
)

type repoStore struct {
	st  *store.Store
	ids *seqid.Generator
}

func NewRepo(st *store.Store, ids *seqid.Generator) Repository {
	return &repoStore{st: st, ids: ids}
}

func (r *repoStore) Create(ctx context.Context, a *Appointment) error {
	key, err := r.st.InsertOne(ctx, Collection, a.doc())
	if err != nil {
		return err
	}
	a.Key = key.String()
	return nil
}

func (r *repoStore) GetByKey(ctx context.Context, key string) (*Appointment, error) {
	id, err := parseKey(key)
	if err != nil {
		return nil, err
	}
	doc, err := r.st.FindByKey(ctx, Collection, id)
	if err != nil {
		return nil, err
	}
	return fromDoc(doc), nil
}

func (r *repoStore) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	total, err := r.st.Count(ctx, Collection, store.Filter{})
	if err != nil {
		return nil, 0, err
	}
	docs, err := r.st.FindAll(ctx, Collection, store.FindOptions{
		OrderBy: "appointment_date",
		Desc:    true,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, 0, err
	}
	return fromDocs(docs), total, nil
}

func (r *repoStore) Search(ctx context.Context, f store.Filter) ([]*Appointment, error) {
	docs, err := r.st.Find(ctx, Collection, f, store.FindOptions{
		OrderBy: "appointment_date",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return fromDocs(docs), nil
}

func (r *repoStore) Update(ctx context.Context, key string, fields map[string]interface{}) error {
	id, err := parseKey(key)
	if err != nil {
		return err
	}
	return r.st.UpdateOne(ctx, Collection, id, fields)
}

func (r *repoStore) Delete(ctx context.Context, key string) error {
	id, err := parseKey(key)
	if err != nil {
		return err
	}
	return r.st.DeleteOne(ctx, Collection, id)
}

func (r *repoStore) NextID(ctx context.Context) (string, error) {
	return r.ids.Next(ctx, Collection, "appointment_id", seqid.Appointment)
}

func parseKey(key string) (uuid.UUID, error) {
	id, err := uuid.Parse(key)
	if err != nil {
		return uuid.Nil, store.ErrNotFound
	}
	return id, nil
}
