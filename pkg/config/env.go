package config

const EnvPrefix = "SAREE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "SAREE_APP_ENV"
	EnvPort                   = "SAREE_APP_PORT"
	EnvDBDSN                  = "SAREE_DB_DSN"
	EnvDBHost                 = "SAREE_DB_HOST"
	EnvDBUser                 = "SAREE_DB_USER"
	EnvDBName                 = "SAREE_DB_NAME"
	EnvDBPassword             = "SAREE_DB_PASSWORD"
	EnvRedisURL               = "SAREE_REDIS_URL"
	EnvJWTSecret              = "SAREE_JWT_SECRET"
	EnvJWTIssuer              = "SAREE_JWT_ISSUER"
	EnvJWTExpMins             = "SAREE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "SAREE_REFRESH_TOKEN_TTL_MINUTES"
	EnvCORSAllowedOrigins     = "SAREE_CORS_ALLOWED_ORIGINS"
)

var dsnPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
