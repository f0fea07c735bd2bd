package main

import (
	"github.com/dmitrymomot/storefront/modules/inquiry"
	"github.com/dmitrymomot/storefront/pkg/email"
	"github.com/dmitrymomot/storefront/pkg/environment"
	"github.com/dmitrymomot/storefront/pkg/httpserver"
	"github.com/dmitrymomot/storefront/pkg/redis"
)

type appConfig struct {
	Env             environment.Environment `env:"APP_ENV" envDefault:"development"`
	ServiceName     string                  `env:"SERVICE_NAME" envDefault:"storefront"`
	DefaultLanguage string                  `env:"DEFAULT_LANGUAGE" envDefault:"pt-BR"`
	MetricsNS       string                  `env:"METRICS_NAMESPACE" envDefault:"storefront"`
}

type config struct {
	App     appConfig
	HTTP    httpserver.Config
	Email   email.Config
	Inquiry inquiry.Config
	Redis   redis.Config
}
