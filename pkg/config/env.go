package config

const (
	EnvPrefix = "CATALOG"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "CATALOG_APP_ENV"
	EnvPort         = "CATALOG_APP_PORT"
	EnvLogLevel     = "CATALOG_LOG_LEVEL"
	EnvLogWarnStack = "CATALOG_LOG_WARN_STACK"

	EnvDBDSN      = "CATALOG_DB_DSN"
	EnvDBHost     = "CATALOG_DB_HOST"
	EnvDBPort     = "CATALOG_DB_PORT"
	EnvDBUser     = "CATALOG_DB_USER"
	EnvDBPassword = "CATALOG_DB_PASSWORD"
	EnvDBName     = "CATALOG_DB_NAME"
	EnvDBSSLMode  = "CATALOG_DB_SSLMODE"
	EnvDBLogSQL   = "CATALOG_DB_LOG_SQL"

	EnvRedisURL  = "CATALOG_REDIS_URL"
	EnvRedisAddr = "CATALOG_REDIS_ADDR"

	EnvRateLimitWindow = "CATALOG_RATE_LIMIT_WINDOW"
	EnvRateLimitPerIP  = "CATALOG_RATE_LIMIT_PER_IP"
	EnvCORSOrigins     = "CATALOG_CORS_ALLOWED_ORIGINS"
	EnvAdminEnabled    = "CATALOG_ADMIN_ENABLED"
	EnvUseSQLite       = "CATALOG_USE_SQLITE"
	EnvSQLitePath      = "CATALOG_SQLITE_PATH"
	EnvAutoMigrate     = "CATALOG_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
