package config

// EnvPrefix is passed to envconfig; individual fields pin explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "ROSTER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv   = "ROSTER_APP_ENV"
	EnvPort     = "ROSTER_APP_PORT"
	EnvDBDSN    = "ROSTER_DB_DSN"
	EnvDBHost   = "ROSTER_DB_HOST"
	EnvDBUser   = "ROSTER_DB_USER"
	EnvDBName   = "ROSTER_DB_NAME"
	EnvRedisURL = "ROSTER_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
