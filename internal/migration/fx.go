package migration

import (
	catalogdomain "github.com/tallersur/aberturas/internal/catalog/domain"
	"github.com/tallersur/aberturas/internal/config"
	"github.com/tallersur/aberturas/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg *config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql/sqlite installs are dev setups; let gorm own the schema.
			if err := conn.AutoMigrate(
				&catalogdomain.ProductTemplate{},
				&catalogdomain.TemplateAttribute{},
				&catalogdomain.AttributeOption{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedSampleCatalog {
			return seed.EnsureSampleCatalog(conn)
		}
		return nil
	}),
)
