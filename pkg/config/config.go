// Package config applies environment variable overrides on top of YAML settings.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Env reads settings from the environment. Every method returns current
// unchanged when the variable is not set.
type Env interface {
	String(key, current string) string
	Int(key string, current int) int
	Bool(key string, current bool) bool
	Duration(key string, current time.Duration) time.Duration
}

// viperEnv implements Env on top of viper
type viperEnv struct {
	v *viper.Viper
}

// NewEnv creates an environment reader for prefix. With prefix "minka" the
// key "database.dsn" is read from MINKA_DATABASE_DSN.
func NewEnv(prefix string) Env {
	v := viper.New()

	v.SetEnvPrefix(strings.ToUpper(prefix))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &viperEnv{v: v}
}

// String returns a string setting
func (e *viperEnv) String(key, current string) string {
	if !e.v.IsSet(key) {
		return current
	}
	return e.v.GetString(key)
}

// Int returns an integer setting
func (e *viperEnv) Int(key string, current int) int {
	if !e.v.IsSet(key) {
		return current
	}
	return e.v.GetInt(key)
}

// Bool returns a boolean setting
func (e *viperEnv) Bool(key string, current bool) bool {
	if !e.v.IsSet(key) {
		return current
	}
	return e.v.GetBool(key)
}

// Duration returns a duration setting such as "30s" or "5m"
func (e *viperEnv) Duration(key string, current time.Duration) time.Duration {
	if !e.v.IsSet(key) {
		return current
	}
	return e.v.GetDuration(key)
}
