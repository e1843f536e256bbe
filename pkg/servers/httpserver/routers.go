package httpserver

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/logger"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/servers/httpserver/handlers"
)

type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

type Routes []Route

func (h *httpserver) NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	handler := handlers.New(h.src, h.cfg)

	var routes = Routes{
		Route{"Alive", "GET", "/alive", handler.Alive},
		Route{"ProxyPing", "GET", "/ping", handler.Ping},

		Route{"Build", "POST", "/api/v1/cartridge", handler.Build},
	}

	for _, route := range routes {
		var handler http.Handler
		handler = route.HandlerFunc
		handler = h.MaxBodySize(handler)
		handler = h.MiddleLogger(handler, route.Name)

		for _, v := range strings.Split(route.Method, ",") {
			router.
				Methods(v).
				Path(route.Pattern).
				Name(route.Name).
				Handler(handler)
		}
	}

	router.Handle("/metrics", promhttp.Handler()).Methods("GET").Name("Metrics")

	router.Use(logger.HTTPMiddleware)
	router.Use(h.Recover)

	return router
}
