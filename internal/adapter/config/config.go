package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	App      *App
	HTTP     *HTTP
	Database *Database
	Payment  *Payment
	Commerce *Commerce
	Audit    *Audit
	Notify   *Notify
	Auth     *Auth
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type HTTP struct {
	HostString         string `env:"RUN_ADDRESS"`
	FrontendSuccessURL string `env:"FRONTEND_SUCCESS_URL"`
	FrontendFailureURL string `env:"FRONTEND_FAILURE_URL"`
	FrontendCancelURL  string `env:"FRONTEND_CANCEL_URL"`
	// Public base URL of this service, used to build the payment gateway
	// return/cancel redirect targets.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type Payment struct {
	BaseURL      string        `env:"PAYPAL_API_BASE"`
	ClientID     string        `env:"PAYPAL_CLIENT_ID"`
	ClientSecret string        `env:"PAYPAL_CLIENT_SECRET"`
	WebhookID    string        `env:"PAYPAL_WEBHOOK_ID"`
	BrandName    string        `env:"PAYPAL_BRAND_NAME" envDefault:"Dropship Store"`
	Timeout      time.Duration `env:"PAYPAL_TIMEOUT" envDefault:"15s"`
}

type Commerce struct {
	StoreName   string        `env:"SHOPIFY_STORE_NAME"`
	AccessToken string        `env:"SHOPIFY_API_PASSWORD"`
	APIVersion  string        `env:"SHOPIFY_API_VERSION" envDefault:"2024-01"`
	Timeout     time.Duration `env:"SHOPIFY_TIMEOUT" envDefault:"15s"`
}

type Audit struct {
	MongoURI   string `env:"MONGO_URI"`
	MongoDB    string `env:"MONGO_DB_NAME"`
	Collection string `env:"MONGO_AUDIT_COLLECTION" envDefault:"checkout_audit"`
}

type Notify struct {
	URL     string        `env:"NOTIFY_WEBHOOK_URL"`
	Timeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
}

type Auth struct {
	// Hex-encoded symmetric key for operator tokens on the settlement
	// endpoint.
	OperatorKey string `env:"OPERATOR_TOKEN_KEY"`
}

func NewConfig() (*Config, error) {
	var app App
	var http HTTP
	var db Database
	var payment Payment
	var commerce Commerce
	var audit Audit
	var notify Notify
	var auth Auth

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&http.PublicBaseURL, "b", `http://localhost:8080`, "Public base URL")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	for name, target := range map[string]any{
		"app":      &app,
		"http":     &http,
		"database": &db,
		"payment":  &payment,
		"commerce": &commerce,
		"audit":    &audit,
		"notify":   &notify,
		"auth":     &auth,
	} {
		if err := env.Parse(target); err != nil {
			return nil, fmt.Errorf("error parsing env %s config: %w", name, err)
		}
	}

	if payment.BaseURL == "" || payment.ClientID == "" || payment.ClientSecret == "" {
		return nil, fmt.Errorf("payment gateway settings are not configured properly")
	}
	if commerce.StoreName == "" || commerce.AccessToken == "" {
		return nil, fmt.Errorf("commerce gateway settings are not configured properly")
	}

	config := Config{
		App:      &app,
		HTTP:     &http,
		Database: &db,
		Payment:  &payment,
		Commerce: &commerce,
		Audit:    &audit,
		Notify:   &notify,
		Auth:     &auth,
	}

	return &config, nil
}
