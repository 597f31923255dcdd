//go:build wireinject
// +build wireinject

package app

import "github.com/google/wire"

var CoreInfraSet = wire.NewSet(
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewHealthTracker,
	NewBackendHTTPClient,
)

var AdapterSet = wire.NewSet(
	NewTokenManager,
	NewBackendClient,
	NewCatalog,
	NewDispatcher,
	NewGateway,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	AdapterSet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
