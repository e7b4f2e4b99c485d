package main

import (
	"context"
	"fmt"

	"github.com/MikeRez0/dropship-checkout/internal/adapter/alert"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/audit"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/auth"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/client/commerce"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/client/payment"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/config"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/handler/http"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/logger"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/notify"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/storage"
	"github.com/MikeRez0/dropship-checkout/internal/adapter/storage/repository"
	"github.com/MikeRez0/dropship-checkout/internal/core/port"
	"github.com/MikeRez0/dropship-checkout/internal/core/service"
	"github.com/MikeRez0/dropship-checkout/internal/metrics"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewOrderRepository(db)
	if err != nil {
		log.Error("order repo creating error", zap.Error(err))
		return
	}

	tokenService, err := auth.New(conf.Auth)
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	paymentClient, err := payment.NewClient(conf.Payment, log.Named("Payment"))
	if err != nil {
		log.Error("payment client creating error", zap.Error(err))
		return
	}
	commerceClient, err := commerce.NewClient(conf.Commerce, log.Named("Commerce"))
	if err != nil {
		log.Error("commerce client creating error", zap.Error(err))
		return
	}

	auditSink, err := audit.NewSink(ctx, conf.Audit, log.Named("Audit"))
	if err != nil {
		log.Error("audit sink creating error", zap.Error(err))
		return
	}

	notifier, err := notify.NewService(conf.Notify, log.Named("Notify"))
	if err != nil {
		log.Error("notification service creating error", zap.Error(err))
		return
	}

	sagaMetrics := metrics.NewSagaMetrics()
	alertSink := alert.NewSink(log.Named("Alert"))

	validator := service.NewInventoryValidator(commerceClient, log.Named("Validator"))

	redirects := port.RedirectTargets{
		ReturnURL: conf.HTTP.PublicBaseURL + "/api/checkout/return",
		CancelURL: conf.HTTP.PublicBaseURL + "/api/checkout/cancel",
	}

	orchestrator, err := service.NewCheckoutOrchestrator(
		repo, paymentClient, commerceClient, validator,
		auditSink, notifier, alertSink, sagaMetrics, redirects,
		log.Named("Checkout"))
	if err != nil {
		log.Error("checkout orchestrator creating error", zap.Error(err))
		return
	}

	checkoutHandler, err := http.NewCheckoutHandler(orchestrator, conf.HTTP, log.Named("Checkout handler"))
	if err != nil {
		log.Error("checkout handler creating error", zap.Error(err))
		return
	}
	webhookHandler, err := http.NewWebhookHandler(orchestrator, paymentClient, log.Named("Webhook handler"))
	if err != nil {
		log.Error("webhook handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, checkoutHandler, webhookHandler,
		sagaMetrics.Handler(), db, log.Named("Router"))
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
