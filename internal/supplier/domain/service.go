package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateSupplierRequest) (SupplierResponse, error)
	Get(ctx context.Context, id int64) (SupplierResponse, error)
	List(ctx context.Context, nameFilter string, page pagination.Pageable) (pagination.Page[SupplierResponse], error)
	Update(ctx context.Context, id int64, req UpdateSupplierRequest) (SupplierResponse, error)
	Delete(ctx context.Context, id int64) error
}
