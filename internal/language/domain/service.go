package domain

import "context"

type Service interface {
	List(ctx context.Context) ([]LanguageResponse, error)
	Get(ctx context.Context, id int64) (LanguageResponse, error)
}
