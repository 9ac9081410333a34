package catalog

import "context"

type Repository interface {
	List(ctx context.Context) ([]Prestation, error)
	GetByKey(ctx context.Context, key string) (*Prestation, error)
	Count(ctx context.Context) (int, error)
	InsertAll(ctx context.Context, prestations []Prestation) error
}
