package config

import "time"

const defaultPresignTTL = 15 * time.Minute

type ServiceConfig struct {
	Name            string `yaml:"name"`
	Environment     string `yaml:"environment"`
	Version         string `yaml:"version"`
	ClientURL       string `yaml:"client_url"`
	DefaultCurrency string `yaml:"default_currency"`
}

type SupabaseConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	ProjectURL string `yaml:"project_url"`
}

// WebhookConfig holds the shared secret used to sign payment gateway notifications
type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// Enabled reports whether card payments go through Stripe.
func (c StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type S3Config struct {
	Region          string        `yaml:"region"`
	Bucket          string        `yaml:"bucket"`
	AccessKeyID     string        `yaml:"access_key_id"`
	SecretAccessKey string        `yaml:"secret_access_key"`
	Endpoint        string        `yaml:"endpoint"`
	PresignTTL      time.Duration `yaml:"presign_ttl"`
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}
