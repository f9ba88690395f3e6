package delivery

import (
	"github.com/smallbiznis/estoque/internal/delivery/repository"
	"github.com/smallbiznis/estoque/internal/delivery/service"
	"go.uber.org/fx"
)

var Module = fx.Module("delivery.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
