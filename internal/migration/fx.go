package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node, log *zap.Logger) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		if err := seed.EnsureLanguages(conn, node, log); err != nil {
			return err
		}
		if cfg.SeedSampleData {
			return seed.EnsureSampleData(conn, node, log)
		}
		return nil
	}),
)
