package api

import (
	"log"
	stdhttp "net/http"

	intconfig "ourbus/internal/config"
	h "ourbus/internal/http/handlers"
	"ourbus/internal/http/middleware"
	"ourbus/internal/kv"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, store kv.Store) *gin.Engine {
	h.Configure(store, env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())
	r.Use(middleware.GuestOptional([]byte(env.JWTSecret)))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/store-check", h.StoreCheck)

		auth := api.Group("/auth")
		auth.POST("/guest", h.GuestLogin)

		seats := api.Group("/seats")
		seats.GET("", h.GetSeats)
		seats.DELETE("", h.ResetSeats)

		api.POST("/quote", h.GetQuote)

		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.PUT("/:id/boarded", h.SetBoardedStatus)
		bookings.GET("/:id/e-ticket", h.GetBookingETicket)

		api.GET("/boarding", h.GetBoardingSequence)
	}

	return r
}
