//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"wallfeed/internal"
	"wallfeed/internal/controllers"
	"wallfeed/internal/providers"
	"wallfeed/internal/services"
	"wallfeed/internal/snapshot"
	"wallfeed/internal/storage/factory"
	"wallfeed/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewLastSeenProvider,
		factory.NewPostStore,

		snapshot.NewZstdCompressor,
		snapshot.NewSnapshotter,
		snapshot.NewFileManager,
		snapshot.NewScheduler,
		services.NewTimelineService,
		controllers.NewTimelineController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
