package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/tallersur/aberturas/internal/config"
	"github.com/tallersur/aberturas/internal/migration"
	"github.com/tallersur/aberturas/internal/observability"
	"github.com/tallersur/aberturas/internal/server"
	"github.com/tallersur/aberturas/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface plus the catalog and pricing domains it wires in.
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
