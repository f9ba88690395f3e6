package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/migration"
	"github.com/smallbiznis/estoque/internal/observability"
	"github.com/smallbiznis/estoque/internal/server"
	"github.com/smallbiznis/estoque/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
