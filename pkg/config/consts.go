package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix mainly guards against accidental collisions.
const EnvPrefix = "shoptrack"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "SHOPTRACK_APP_ENV"
	EnvPort     = "SHOPTRACK_APP_PORT"
	EnvDBDSN    = "SHOPTRACK_DB_DSN"
	EnvDBHost   = "SHOPTRACK_DB_HOST"
	EnvDBUser   = "SHOPTRACK_DB_USER"
	EnvDBName   = "SHOPTRACK_DB_NAME"
	EnvRedisURL = "SHOPTRACK_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
