package address

import (
	"github.com/smallbiznis/estoque/internal/address/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("address",
	fx.Provide(repository.Provide),
)
