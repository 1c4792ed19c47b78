package config

// EnvPrefix is applied by envconfig when resolving variables.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "GYMMAN_DB_DSN"
	EnvDBHost = "GYMMAN_DB_HOST"
	EnvDBUser = "GYMMAN_DB_USER"
	EnvDBName = "GYMMAN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
