package company

import "context"

type Repository interface {
	GetByID(context context.Context, id string) (*Company, error)
	GetByName(context context.Context, name string) (*Company, error)
	List(context context.Context, limit, offset int) ([]*Company, error)
	Count(context context.Context) (int, error)
	Create(context context.Context, company *Company) error
	Update(context context.Context, company *Company) error
}
