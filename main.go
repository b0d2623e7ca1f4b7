// Package main minjemin admin gateway.
//
// @title           Minjemin Admin Gateway
// @version         1.0
// @description     Session-aware gateway for the minjemin product service (products, rentals, stats).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mademanik/minjeminapp/app/echoServer"
	dashboardctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/dashboard"
	productctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/product"
	rentalctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/rental"
	sessionctrl "github.com/mademanik/minjeminapp/app/echoServer/controller/session"
	"github.com/mademanik/minjeminapp/app/echoServer/validation"
	"github.com/mademanik/minjeminapp/config"
	productrepo "github.com/mademanik/minjeminapp/repository/product"
	rentalrepo "github.com/mademanik/minjeminapp/repository/rental"
	"github.com/mademanik/minjeminapp/repository/rest"
	statsrepo "github.com/mademanik/minjeminapp/repository/stats"
	"github.com/mademanik/minjeminapp/service/view"
	"github.com/mademanik/minjeminapp/service/workspace"
	"github.com/mademanik/minjeminapp/util/keycloak"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// session verifier: a real realm when an issuer is configured,
	// the HMAC dev verifier otherwise
	var verifier keycloak.Verifier
	if cfg.OIDCIssuer != "" {
		v, err := keycloak.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID, cfg.RedirectURL)
		if err != nil {
			log.Error("oidc init failed", "err", err)
			os.Exit(1)
		}
		verifier = v
	} else {
		log.Warn("no OIDC issuer configured, using HMAC dev verifier")
		verifier = keycloak.NewHMACVerifier(cfg.JWTSecret)
	}

	// upstream repos
	client := rest.New(cfg.UpstreamURL)
	pr := productrepo.New(client)
	rr := rentalrepo.New(client)
	sr := statsrepo.New(client)

	// per-session view controllers
	v := view.NewValidator()
	hub := workspace.NewHub(pr, rr, sr, v, log)

	// controllers
	sessionC := &sessionctrl.Controller{Verifier: verifier, AdminRole: cfg.AdminRole, Log: log}
	productC := &productctrl.Controller{Hub: hub, Log: log}
	rentalC := &rentalctrl.Controller{Hub: hub, Log: log}
	dashboardC := &dashboardctrl.Controller{Hub: hub, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New(v)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Session:   sessionC,
		Product:   productC,
		Rental:    rentalC,
		Dashboard: dashboardC,

		Verifier:  verifier,
		AdminRole: cfg.AdminRole,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8081"
	}

	slog.Info("starting gateway", "upstream", cfg.UpstreamURL, "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
