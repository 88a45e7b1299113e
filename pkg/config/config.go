package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Snapshot     SnapshotConfig
	Checkout     CheckoutConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Snapshot.validate(); err != nil {
		return nil, err
	}
	if cfg.Snapshot.Backend == SnapshotBackendDB && !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.Snapshot.Backend == SnapshotBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis snapshot backend", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GLOWSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"GLOWSHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GLOWSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GLOWSHOP_LOG_WARN_STACK" default:"false"`
	// CORSOrigins lists the storefront origins allowed to call the API.
	CORSOrigins []string `envconfig:"GLOWSHOP_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"GLOWSHOP_DB_DSN"`
	SQLitePath string `envconfig:"GLOWSHOP_SQLITE_PATH" default:"glowshop.db"`

	LegacyHost     string `envconfig:"GLOWSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"GLOWSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GLOWSHOP_DB_USER"`
	LegacyPassword string `envconfig:"GLOWSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"GLOWSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"GLOWSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GLOWSHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"GLOWSHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"GLOWSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GLOWSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GLOWSHOP_REDIS_URL"`
	Address      string        `envconfig:"GLOWSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"GLOWSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"GLOWSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GLOWSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GLOWSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GLOWSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GLOWSHOP_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"GLOWSHOP_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// SnapshotConfig selects where cart snapshots are kept between requests.
type SnapshotConfig struct {
	Backend   string        `envconfig:"GLOWSHOP_SNAPSHOT_BACKEND" default:"memory"`
	KeyPrefix string        `envconfig:"GLOWSHOP_SNAPSHOT_KEY_PREFIX" default:"cart"`
	TTL       time.Duration `envconfig:"GLOWSHOP_SNAPSHOT_TTL" default:"720h"`
	// SessionIdleTTL bounds how long idle cart sessions and checkout forms stay in memory.
	SessionIdleTTL time.Duration `envconfig:"GLOWSHOP_SESSION_IDLE_TTL" default:"30m"`
}

func (s SnapshotConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case SnapshotBackendMemory, SnapshotBackendRedis, SnapshotBackendDB, SnapshotBackendNone:
		return nil
	}
	return fmt.Errorf("unsupported %s %q", EnvSnapshotBackend, s.Backend)
}

// Kind returns the normalized backend name.
func (s SnapshotConfig) Kind() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"GLOWSHOP_FREE_SHIPPING_THRESHOLD" default:"200000"`
	ShippingFee           decimal.Decimal `envconfig:"GLOWSHOP_SHIPPING_FEE" default:"15000"`
	DefaultCountry        string          `envconfig:"GLOWSHOP_DEFAULT_COUNTRY" default:"España"`
	Locale                string          `envconfig:"GLOWSHOP_LOCALE" default:"es-CO"`
}

type CatalogConfig struct {
	// SeedPath overrides the embedded catalog with a JSON file on disk.
	SeedPath string `envconfig:"GLOWSHOP_CATALOG_SEED_PATH"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GLOWSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GLOWSHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
