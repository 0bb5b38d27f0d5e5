package dashboard

// Config wires the SDK from environment variables. RedisURL is optional:
// when empty, state persists to a local JSON file at StatePath instead.
// When set, the rest of the Redis settings (retries, key prefix) load
// from the environment through the integration package's own Config.
type Config struct {
	APIBaseURL string `env:"API_BASE_URL,required"`
	StatePath  string `env:"STATE_PATH" envDefault:".poolkit_state.json"`
	RedisURL   string `env:"REDIS_URL"`

	AppName  string `env:"APP_NAME" envDefault:"pool-dashboard"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}
