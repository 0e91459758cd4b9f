package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL bounds session lifetime from mint to expiry.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// BcryptCost is the credential hashing work factor.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// DefaultRole is applied when provisioning input carries no role. It is a
	// deliberate, documented default, validated against the role enum at use.
	DefaultRole string `env:"DEFAULT_ROLE, default=ADMIN"`

	// StoreLookupTimeout bounds the subject lookup during session validation;
	// on expiry the session is treated as invalid.
	StoreLookupTimeout time.Duration `env:"STORE_LOOKUP_TIMEOUT, default=2s"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=farmapay_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
