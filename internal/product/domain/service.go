package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	Get(ctx context.Context, id int64) (ProductResponse, error)
	List(ctx context.Context, search string, page pagination.Pageable) (pagination.Page[ProductResponse], error)
	Update(ctx context.Context, id int64, req UpdateProductRequest) (ProductResponse, error)
	Delete(ctx context.Context, id int64) error
}
