package language

import (
	"github.com/smallbiznis/estoque/internal/language/repository"
	"github.com/smallbiznis/estoque/internal/language/service"
	"go.uber.org/fx"
)

var Module = fx.Module("language.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
