package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Session      SessionConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GYMMAN_APP_ENV" required:"true"`
	Port         string `envconfig:"GYMMAN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GYMMAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GYMMAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GYMMAN_DB_DSN"`
	Driver string `envconfig:"GYMMAN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GYMMAN_DB_HOST"`
	LegacyPort     int    `envconfig:"GYMMAN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GYMMAN_DB_USER"`
	LegacyPassword string `envconfig:"GYMMAN_DB_PASSWORD"`
	LegacyName     string `envconfig:"GYMMAN_DB_NAME"`
	LegacySSLMode  string `envconfig:"GYMMAN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GYMMAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GYMMAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GYMMAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GYMMAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GYMMAN_REDIS_URL" required:"true"`
	Password     string        `envconfig:"GYMMAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"GYMMAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GYMMAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GYMMAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GYMMAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GYMMAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GYMMAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GYMMAN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GYMMAN_JWT_ISSUER" default:"gymman"`
	ExpirationMinutes int    `envconfig:"GYMMAN_JWT_EXPIRATION_MINUTES" default:"30"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GYMMAN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GYMMAN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GYMMAN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GYMMAN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GYMMAN_ARGON_KEY_LEN" default:"32"`
}

// SessionConfig controls the server-side session records. Sessions expire
// after IdleTTLMinutes without a request; the check-in page counters start
// at CheckinPageSize and grow by CheckinPageIncrement per load-more.
type SessionConfig struct {
	IdleTTLMinutes       int `envconfig:"GYMMAN_SESSION_IDLE_TTL_MINUTES" default:"30"`
	CheckinPageSize      int `envconfig:"GYMMAN_CHECKIN_PAGE_SIZE" default:"15"`
	CheckinPageIncrement int `envconfig:"GYMMAN_CHECKIN_PAGE_INCREMENT" default:"5"`
}

// IdleTTL returns the session idle expiry as a duration.
func (s SessionConfig) IdleTTL() time.Duration {
	if s.IdleTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(s.IdleTTLMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GYMMAN_AUTO_MIGRATE" default:"false"`
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
