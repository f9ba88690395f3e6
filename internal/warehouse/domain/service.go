package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateWarehouseRequest) (WarehouseResponse, error)
	Get(ctx context.Context, id int64) (WarehouseResponse, error)
	List(ctx context.Context, page pagination.Pageable) (pagination.Page[WarehouseResponse], error)
	Update(ctx context.Context, id int64, req UpdateWarehouseRequest) (WarehouseResponse, error)
	Delete(ctx context.Context, id int64) error
}
