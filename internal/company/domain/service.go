package domain

import (
	"context"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	Get(ctx context.Context, id int64) (CompanyResponse, error)
	List(ctx context.Context, nameFilter string, page pagination.Pageable) (pagination.Page[CompanyResponse], error)
	Update(ctx context.Context, id int64, req UpdateCompanyRequest) (CompanyResponse, error)
	Delete(ctx context.Context, id int64) error
}
