// Package main wires the HTTP/WS server binary together.
package main

import (
	"github.com/callegarimattia/starfleet/internal/config"
	"github.com/callegarimattia/starfleet/internal/controller"
	"github.com/callegarimattia/starfleet/internal/httpapi"
	"github.com/callegarimattia/starfleet/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application owns the echo instance and every service it's backed by.
type Application struct {
	E   *echo.Echo
	cfg config.Server
}

// Setup loads configuration and wires the identity/lobby/game services, the
// notification bus and the HTTP handlers into a ready-to-serve echo.Echo.
func (a *Application) Setup() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load server config")
	}
	a.cfg = cfg

	notifier := service.NewNotificationService()
	identity := service.NewMemoryIdentityService(cfg.JWTSecret)
	memory := service.NewMemoryService(notifier)

	ctrl := controller.NewAppController(identity, memory, memory, notifier)
	handler := httpapi.NewEchoHandler(ctrl)

	a.E = echo.New()
	a.E.HideBanner = true
	handler.RegisterRoutes(a.E, []byte(cfg.JWTSecret), cfg.RateLimit)
}

// Run calls Setup and blocks serving HTTP on cfg.Port.
func (a *Application) Run() error {
	if a.E == nil {
		a.Setup()
	}
	log.Info().Str("port", a.cfg.Port).Msg("starting starfleet server")
	return a.E.Start(":" + a.cfg.Port)
}
