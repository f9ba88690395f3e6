package service

import (
	"context"

	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/language/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("language.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.LanguageResponse, error) {
	languages, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make([]domain.LanguageResponse, 0, len(languages))
	for _, language := range languages {
		out = append(out, domain.ToResponse(language))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.LanguageResponse, error) {
	language, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.LanguageResponse{}, err
	}
	if language == nil {
		return domain.LanguageResponse{}, apperror.NewNotFound("language", id)
	}
	return domain.ToResponse(language), nil
}
