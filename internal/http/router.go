package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripplanner/internal/config"
	h "tripplanner/internal/http/handlers"
	"tripplanner/internal/http/middleware"
	"tripplanner/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env, store repositories.Store) *gin.Engine {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger("/metrics"),
		gin.Recovery(),
		middleware.CORS(env.CORSOrigins),
		metrics.Handler(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	a := h.API{Store: store}

	api := r.Group("/api")
	{
		api.GET("/test", h.Test)
		api.GET("/health", a.Health)
		api.GET("/routes", h.Routes)

		trips := api.Group("/trips")
		trips.GET("", a.ListTrips)
		trips.POST("", a.CreateTrip)
		trips.GET("/:id", a.GetTrip)
		trips.DELETE("/:id", a.DeleteTrip)
		trips.GET("/:id/canvas.svg", a.TripCanvas)
		trips.GET("/:id/itinerary.pdf", a.TripItinerary)

		cities := api.Group("/cities")
		cities.POST("", a.CreateCity)
		cities.PATCH("/:id", a.UpdateCity)
		cities.DELETE("/:id", a.DeleteCity)

		activities := api.Group("/activities")
		activities.POST("", a.CreateActivity)
		activities.PATCH("/:id", a.UpdateActivity)
		activities.DELETE("/:id", a.DeleteActivity)
	}

	h.SetRouter(r)
	return r
}
