package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"spacetime.railviz.dev/internal/appconf"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func registerPprofHandlers(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/pprof/", pprof.Index)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/cmdline", pprof.Cmdline)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/profile", pprof.Profile)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/symbol", pprof.Symbol)
	router.HandlerFunc(http.MethodGet, "/debug/pprof/trace", pprof.Trace)
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/stations", validateAPIKey(api, api.stationsHandler))
	router.Handler(http.MethodGet, "/api/stations/nearest", validateAPIKey(api, api.nearestStationHandler))
	router.Handler(http.MethodGet, "/api/trips", validateAPIKey(api, api.tripsHandler))
	router.Handler(http.MethodGet, "/api/trips/:id", validateAPIKey(api, api.tripDetailHandler))
	router.Handler(http.MethodGet, "/api/categories", validateAPIKey(api, api.categoriesHandler))
	router.Handler(http.MethodGet, "/api/statistics", validateAPIKey(api, api.statisticsHandler))

	router.Handler(http.MethodGet, "/api/window/:date", validateAPIKey(api, api.windowHandler))
	router.Handler(http.MethodGet, "/api/scene", validateAPIKey(api, api.sceneHandler))

	router.Handler(http.MethodGet, "/api/filter/station", validateAPIKey(api, api.stationFilterHandler))
	router.Handler(http.MethodGet, "/api/filter/line/:id", validateAPIKey(api, api.lineFilterHandler))
	router.Handler(http.MethodGet, "/api/filter/clear", validateAPIKey(api, api.clearFilterHandler))
	router.Handler(http.MethodGet, "/api/search", validateAPIKey(api, api.searchTrainHandler))
	router.Handler(http.MethodPost, "/api/hit", validateAPIKey(api, api.hitHandler))

	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	if api.Config.Env == appconf.Development {
		registerPprofHandlers(router)
	}
}
