package catalog

import (
	"github.com/tallersur/aberturas/internal/catalog/repository"
	"github.com/tallersur/aberturas/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
