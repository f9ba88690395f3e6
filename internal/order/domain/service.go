package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	Get(ctx context.Context, id int64) (OrderResponse, error)
	List(ctx context.Context, page pagination.Pageable) (pagination.Page[OrderResponse], error)
	Update(ctx context.Context, id int64, req UpdateOrderRequest) (OrderResponse, error)
	Delete(ctx context.Context, id int64) error
}
