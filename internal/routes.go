package internal

import (
	"net/http"
	"wallfeed/internal/controllers"
	"wallfeed/internal/providers"
)

func InitRoutes(timelineController *controllers.TimelineController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get(controllers.ProfilePrefix, http.HandlerFunc(timelineController.Status))
	routers.Get(controllers.UpdatePrefix, http.HandlerFunc(timelineController.Update))
	return routers
}
