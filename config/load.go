package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func Load() App {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := App{
		Port:         getenv("APP_PORT", "8081"),
		UpstreamURL:  must("UPSTREAM_URL"),
		OIDCIssuer:   os.Getenv("OIDC_ISSUER"),
		OIDCClientID: os.Getenv("OIDC_CLIENT_ID"),
		RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		AdminRole:    getenv("ADMIN_ROLE", "admin-role"),
		JWTSecret:    getenv("JWT_SECRET", "local_dev_secret"),
		Env:          getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
