package inventory

import "context"

type FilterRepository interface {
	List(ctx context.Context) ([]*FilterLine, error)
	GetByID(ctx context.Context, id string) (*FilterLine, error)
	Create(ctx context.Context, line *FilterLine) error
	Update(ctx context.Context, line *FilterLine) error
	Delete(ctx context.Context, id string) error
}

type BeltRepository interface {
	List(ctx context.Context) ([]*BeltLine, error)
	GetByID(ctx context.Context, id string) (*BeltLine, error)
	Create(ctx context.Context, line *BeltLine) error
	Update(ctx context.Context, line *BeltLine) error
	Delete(ctx context.Context, id string) error
}
