package main

import (
	"github.com/smallbiznis/incentive/internal/commission"
	"github.com/smallbiznis/incentive/internal/config"
	"github.com/smallbiznis/incentive/internal/observability"
	"github.com/smallbiznis/incentive/internal/server"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,

		// Functional Domains
		commission.Module,

		server.Module,
	)
	app.Run()
}
