package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Sanctions SanctionsConfig `mapstructure:"sanctions"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

// AnalysisConfig controls the content risk analysis engine
type AnalysisConfig struct {
	// StrictMode surfaces low-severity informational flags for mere
	// mentions of authoritarian figures and entities
	StrictMode bool `mapstructure:"strict_mode"`

	// CustomKeywords extends the built-in pattern database,
	// category -> additional pattern entries. Merged additively.
	CustomKeywords map[string][]CustomPattern `mapstructure:"custom_keywords"`
}

// CustomPattern is one caller-supplied detection rule
type CustomPattern struct {
	Pattern  string `mapstructure:"pattern"`
	Severity string `mapstructure:"severity"`
}

type SanctionsConfig struct {
	SearchURL  string        `mapstructure:"search_url"`
	SDNListURL string        `mapstructure:"sdn_list_url"`
	MinScore   float64       `mapstructure:"min_score"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/grantvet")
	}

	v.SetEnvPrefix("GRANTVET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("database.host", "GRANTVET_DATABASE_HOST")
	v.BindEnv("database.port", "GRANTVET_DATABASE_PORT")
	v.BindEnv("database.user", "GRANTVET_DATABASE_USER")
	v.BindEnv("database.password", "GRANTVET_DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "GRANTVET_DATABASE_DBNAME")
	v.BindEnv("database.sslmode", "GRANTVET_DATABASE_SSLMODE")
	v.BindEnv("redis.host", "GRANTVET_REDIS_HOST")
	v.BindEnv("redis.port", "GRANTVET_REDIS_PORT")
	v.BindEnv("redis.password", "GRANTVET_REDIS_PASSWORD")
	v.BindEnv("auth.api_key", "GRANTVET_AUTH_API_KEY")
	v.BindEnv("app.environment", "GRANTVET_APP_ENVIRONMENT")
	v.BindEnv("analysis.strict_mode", "GRANTVET_ANALYSIS_STRICT_MODE")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A config file is optional; env vars and defaults are enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "grantvet")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "grantvet")
	v.SetDefault("database.dbname", "grantvet")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "grantvet:")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")

	v.SetDefault("analysis.strict_mode", false)

	v.SetDefault("sanctions.search_url", "https://sanctionssearch.ofac.treas.gov/api/search")
	v.SetDefault("sanctions.sdn_list_url", "https://www.treasury.gov/ofac/downloads/sdnlist.txt")
	v.SetDefault("sanctions.min_score", 80)
	v.SetDefault("sanctions.timeout", 30*time.Second)
	v.SetDefault("sanctions.cache_ttl", time.Hour)
}
