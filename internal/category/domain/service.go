package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	Get(ctx context.Context, id int64) (CategoryResponse, error)
	List(ctx context.Context, search string, page pagination.Pageable) (pagination.Page[CategoryResponse], error)
	Update(ctx context.Context, id int64, req UpdateCategoryRequest) (CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
}
