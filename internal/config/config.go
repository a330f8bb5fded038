package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	pkgconfig "github.com/boring-ventures/minka-sub001/pkg/config"
	"github.com/boring-ventures/minka-sub001/pkg/logger"
)

const envPrefix = "minka"

type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      logger.Config  `yaml:"log"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Redis    RedisConfig    `yaml:"redis"`
	S3       S3Config       `yaml:"s3"`
	SMTP     SMTPConfig     `yaml:"smtp"`
}

func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/minka.yaml"
	}

	// Ensure absolute path
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data, pkgconfig.NewEnv(envPrefix))
}

// Parse decodes YAML config and applies environment overrides on top.
func Parse(data []byte, env pkgconfig.Env) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnv(env)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(env pkgconfig.Env) {
	c.Service.Environment = env.String("service.environment", c.Service.Environment)
	c.Server.HTTP.Port = env.Int("server.http.port", c.Server.HTTP.Port)
	c.Server.GRPC.Port = env.Int("server.grpc.port", c.Server.GRPC.Port)

	c.Database.DSN = env.String("database.dsn", c.Database.DSN)
	c.Database.Password = env.String("database.password", c.Database.Password)

	c.Log.Level = env.String("log.level", c.Log.Level)

	c.Supabase.JWTSecret = env.String("supabase.jwt_secret", c.Supabase.JWTSecret)
	c.Webhook.Secret = env.String("webhook.secret", c.Webhook.Secret)
	c.Stripe.SecretKey = env.String("stripe.secret_key", c.Stripe.SecretKey)
	c.Stripe.WebhookSecret = env.String("stripe.webhook_secret", c.Stripe.WebhookSecret)

	c.Redis.Addr = env.String("redis.addr", c.Redis.Addr)
	c.Redis.Password = env.String("redis.password", c.Redis.Password)

	c.S3.AccessKeyID = env.String("s3.access_key_id", c.S3.AccessKeyID)
	c.S3.SecretAccessKey = env.String("s3.secret_access_key", c.S3.SecretAccessKey)

	c.SMTP.Password = env.String("smtp.password", c.SMTP.Password)
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "minka"
	}
	if c.Service.Environment == "" {
		c.Service.Environment = "development"
	}
	if c.Server.HTTP.Port == 0 {
		c.Server.HTTP.Port = 8080
	}
	if c.Redis.Channel == "" {
		c.Redis.Channel = "minka:donations"
	}
	if c.Service.DefaultCurrency == "" {
		c.Service.DefaultCurrency = "BOB"
	}
	if c.S3.PresignTTL == 0 {
		c.S3.PresignTTL = defaultPresignTTL
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Database.DSN == "" && c.Database.Host == "" {
		return fmt.Errorf("database: dsn or host is required")
	}
	if c.Supabase.JWTSecret == "" {
		return fmt.Errorf("supabase: jwt_secret is required")
	}
	if c.Webhook.Secret == "" {
		return fmt.Errorf("webhook: secret is required")
	}
	return nil
}
