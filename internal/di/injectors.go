//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"runlog/internal"
	"runlog/internal/controllers"
	"runlog/internal/persistence"
	"runlog/internal/persistence/interfaces"
	"runlog/internal/providers"
	"runlog/internal/services"
	"runlog/internal/structures"
)

var storeSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewIDProvider,

	persistence.NewZstdCompressor,
	persistence.NewKVStore,
	persistence.NewGateway,
	wire.Bind(new(interfaces.GatewayInterface), new(*persistence.Gateway)),
	services.NewRunService,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		storeSet,
		providers.NewInstrumentedCacheProvider,

		controllers.NewRunController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitStore(cfg *structures.CliFlags) (*Store, error) {

	wire.Build(
		storeSet,
		wire.Struct(new(Store), "*"),
	)

	return nil, nil
}
