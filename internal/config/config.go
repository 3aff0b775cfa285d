package config

import (
	"time"

	"erp-ledger/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Store struct {
		Driver        string        `mapstructure:"driver"` // memory, file, redis, postgres, s3
		Path          string        `mapstructure:"path"`
		WriteBehind   bool          `mapstructure:"write_behind"`
		FlushInterval time.Duration `mapstructure:"flush_interval"`
	} `mapstructure:"store"`

	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		Prefix   string `mapstructure:"prefix"`
	} `mapstructure:"redis"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`

	S3 struct {
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		Prefix    string `mapstructure:"prefix"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"s3"`

	Ledger struct {
		PaymentTermsDays int   `mapstructure:"payment_terms_days"`
		NodeID           int64 `mapstructure:"node_id"`
	} `mapstructure:"ledger"`

	Overdue struct {
		InitialDelay time.Duration `mapstructure:"initial_delay"`
		Interval     time.Duration `mapstructure:"interval"`
	} `mapstructure:"overdue"`

	Auth struct {
		JWTSecret       string `mapstructure:"jwt_secret"`
		Issuer          string `mapstructure:"issuer"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
	} `mapstructure:"auth"`

	Log struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		TimeFormat string `mapstructure:"time_format"`
		Output     string `mapstructure:"output"`
	} `mapstructure:"log"`
}

// Load reads configs/config.yaml (optional), .env (optional) and the
// environment. ERP_STORE_DRIVER overrides store.driver and so on.
func Load() (*Config, error) {
	return LoadFile("configs/config.yaml")
}

// LoadFile is Load with an explicit config file path
func LoadFile(path string) (*Config, error) {
	// .env is optional in every environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("ERP")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log := logger.WithComponent("config")
		log.Debug().Str("path", path).Msg("No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", "data")
	v.SetDefault("store.write_behind", false)
	v.SetDefault("store.flush_interval", 2*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.prefix", "")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "erp_db")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.prefix", "erp/")

	v.SetDefault("ledger.payment_terms_days", 30)
	v.SetDefault("ledger.node_id", 1)

	v.SetDefault("overdue.initial_delay", time.Second)
	v.SetDefault("overdue.interval", time.Duration(0))

	v.SetDefault("auth.issuer", "erp-ledger")
	v.SetDefault("auth.expiration_hours", 24)

	def := logger.DefaultConfig()
	v.SetDefault("log.level", def.Level)
	v.SetDefault("log.format", def.Format)
	v.SetDefault("log.time_format", def.TimeFormat)
	v.SetDefault("log.output", def.Output)
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		TimeFormat: c.Log.TimeFormat,
		Output:     c.Log.Output,
	}
}
