package config

const EnvPrefix = "GLOWSHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	SnapshotBackendMemory = "memory"
	SnapshotBackendRedis  = "redis"
	SnapshotBackendDB     = "db"
	SnapshotBackendNone   = "none"
)

const (
	EnvAppEnv          = "GLOWSHOP_APP_ENV"
	EnvPort            = "GLOWSHOP_APP_PORT"
	EnvLogLevel        = "GLOWSHOP_LOG_LEVEL"
	EnvDBDSN           = "GLOWSHOP_DB_DSN"
	EnvDBHost          = "GLOWSHOP_DB_HOST"
	EnvDBUser          = "GLOWSHOP_DB_USER"
	EnvDBName          = "GLOWSHOP_DB_NAME"
	EnvDBPassword      = "GLOWSHOP_DB_PASSWORD"
	EnvRedisURL        = "GLOWSHOP_REDIS_URL"
	EnvRedisAddr       = "GLOWSHOP_REDIS_ADDR"
	EnvSnapshotBackend = "GLOWSHOP_SNAPSHOT_BACKEND"
	EnvSnapshotTTL     = "GLOWSHOP_SNAPSHOT_TTL"
	EnvShippingFee     = "GLOWSHOP_SHIPPING_FEE"
	EnvFreeShipping    = "GLOWSHOP_FREE_SHIPPING_THRESHOLD"
	EnvUseSQLite       = "GLOWSHOP_USE_SQLITE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
