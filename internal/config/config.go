package config

// Environment variable keys.
const (
	ENV_KEY_APP_ENV   = "APP_ENV"
	ENV_KEY_PORT      = "PORT"
	ENV_KEY_LOG_LEVEL = "LOG_LEVEL"

	// Base URL the editor frontend is served from, used to build share links.
	ENV_KEY_APP_URL = "APP_URL"

	ENV_KEY_DB_HOST                 = "DB_HOST"
	ENV_KEY_DB_PORT                 = "DB_PORT"
	ENV_KEY_DB_USER                 = "DB_USER"
	ENV_KEY_DB_PASSWORD             = "DB_PASSWORD"
	ENV_KEY_DB_DATABASE             = "DB_DATABASE"
	ENV_KEY_DB_MAX_OPEN_CONNECTIONS = "DB_MAX_OPEN_CONNECTIONS"

	ENV_KEY_REDIS_HOST     = "REDIS_HOST"
	ENV_KEY_REDIS_PORT     = "REDIS_PORT"
	ENV_KEY_REDIS_PASSWORD = "REDIS_PASSWORD"

	ENV_KEY_MINIO_BUCKET      = "MINIO_BUCKET"
	ENV_KEY_MINIO_TEMP_PATH   = "MINIO_TEMP_PATH"
	ENV_KEY_MINIO_PUBLIC_PATH = "MINIO_PUBLIC_PATH"
	ENV_KEY_MINIO_ENDPOINT    = "MINIO_ENDPOINT"
	ENV_KEY_MINIO_ACCESS_KEY  = "MINIO_ACCESS_KEY"
	ENV_KEY_MINIO_SECRET_KEY  = "MINIO_SECRET_KEY"

	ENV_KEY_SMTP_HOST     = "SMTP_HOST"
	ENV_KEY_SMTP_PORT     = "SMTP_PORT"
	ENV_KEY_SMTP_USERNAME = "SMTP_USERNAME"
	ENV_KEY_SMTP_PASSWORD = "SMTP_PASSWORD"

	ENV_KEY_WORKER_CONCURRENCY = "WORKER_CONCURRENCY"
)

// PRESIGN_URL_EXPIRE_MINUTES is the lifetime of presigned upload URLs.
const PRESIGN_URL_EXPIRE_MINUTES = 15
