package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSAllowedOrigins is a comma separated allow-list; "*" allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS, default=*"`
	// RequireAuthOnOpenWrites puts the authentication gate in front of the
	// enrollment, payment and teacher-request writes.
	RequireAuthOnOpenWrites bool `env:"REQUIRE_AUTH_ON_OPEN_WRITES, default=false"`

	Token   TokenConfig
	Mongo   MongoConfig
	Payment PaymentConfig
}

type TokenConfig struct {
	Secret string        `env:"ACCESS_TOKEN_SECRET, required"`
	TTL    time.Duration `env:"ACCESS_TOKEN_TTL,    default=1h"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI"`
	User     string        `env:"DB_USER"`
	Password string        `env:"DB_PASS"`
	Host     string        `env:"DB_HOST, default=localhost:27017"`
	Database string        `env:"MONGO_DB, default=tutorSageDB"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type PaymentConfig struct {
	SecretKey string `env:"PAYMENT_SECRET_KEY"`
	Currency  string `env:"PAYMENT_CURRENCY, default=usd"`
	// APIURL overrides the processor endpoint, for stubs and local mocks.
	APIURL string `env:"PAYMENT_API_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs outside production.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// AllowedOrigins splits the CORS allow-list.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// ConnectionURI prefers MONGO_URI; otherwise it builds a URI from DB_USER,
// DB_PASS and DB_HOST. A host without a port is an Atlas SRV record; a host
// with one (including the localhost default) gets a plain mongodb:// URI,
// since SRV URIs cannot carry a port.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	if m.User == "" {
		return "mongodb://" + m.Host
	}

	u := url.URL{
		Scheme: "mongodb",
		User:   url.UserPassword(m.User, m.Password),
		Host:   m.Host,
		Path:   "/",
	}
	if _, _, err := net.SplitHostPort(m.Host); err != nil {
		u.Scheme = "mongodb+srv"
		u.RawQuery = "retryWrites=true&w=majority"
	}
	return u.String()
}
