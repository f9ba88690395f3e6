package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error)
	Get(ctx context.Context, id int64) (CustomerResponse, error)
	List(ctx context.Context, nameFilter string, page pagination.Pageable) (pagination.Page[CustomerResponse], error)
	Update(ctx context.Context, id int64, req UpdateCustomerRequest) (CustomerResponse, error)
	Delete(ctx context.Context, id int64) error
}
