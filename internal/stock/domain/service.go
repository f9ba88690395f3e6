package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateStockRequest) (StockResponse, error)
	Get(ctx context.Context, id int64) (StockResponse, error)
	List(ctx context.Context, page pagination.Pageable) (pagination.Page[StockResponse], error)
	Update(ctx context.Context, id int64, req UpdateStockRequest) (StockResponse, error)
	Delete(ctx context.Context, id int64) error
}
