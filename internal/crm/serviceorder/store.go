package serviceorder

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, clientID, orderID string) error
}
