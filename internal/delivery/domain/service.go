package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateDeliveryRequest) (DeliveryResponse, error)
	Get(ctx context.Context, id int64) (DeliveryResponse, error)
	List(ctx context.Context, page pagination.Pageable) (pagination.Page[DeliveryResponse], error)
	Delete(ctx context.Context, id int64) error
}
