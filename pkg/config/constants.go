package config

const (
	EnvPrefix = "SHOPAPI"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv = "SHOPAPI_APP_ENV"
	EnvPort   = "SHOPAPI_APP_PORT"

	EnvDBDSN  = "SHOPAPI_DB_DSN"
	EnvDBHost = "SHOPAPI_DB_HOST"
	EnvDBUser = "SHOPAPI_DB_USER"
	EnvDBName = "SHOPAPI_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
