package config

type App struct {
	Port         string `env:"APP_PORT" default:"8081"`
	UpstreamURL  string `env:"UPSTREAM_URL,required"`
	OIDCIssuer   string `env:"OIDC_ISSUER"`
	OIDCClientID string `env:"OIDC_CLIENT_ID"`
	RedirectURL  string `env:"OIDC_REDIRECT_URL"`
	AdminRole    string `env:"ADMIN_ROLE" default:"admin-role"`
	JWTSecret    string `env:"JWT_SECRET" default:"local_dev_secret"`
	Env          string `env:"APP_ENV" default:"dev"`
}
