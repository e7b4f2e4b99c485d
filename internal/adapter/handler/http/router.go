package http

import (
	"net/http"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/storage"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	checkoutHandler *CheckoutHandler,
	webhookHandler *WebhookHandler,
	metricsHandler http.Handler,
	db *storage.DB,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		checkout := api.Group("/checkout")
		{
			checkout.POST("", checkoutHandler.CreateCheckout)
			checkout.GET("/return", checkoutHandler.Return)
			checkout.GET("/cancel", checkoutHandler.Cancel)
		}

		orders := api.Group("/orders")
		{
			orders.Use(operatorCheck(tokenService, logger))
			orders.POST("/:id/process", checkoutHandler.Process)
		}

		api.POST("/payments/webhook", webhookHandler.Handle)
	}

	router.GET("/metrics", gin.WrapH(metricsHandler))
	router.GET("/healthz", func(ctx *gin.Context) {
		if err := db.Ping(ctx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
			return
		}
		ctx.Status(http.StatusOK)
	})

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
