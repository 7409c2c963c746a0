package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// env var names consumed at runtime. PORT has no prefix because Railway
// injects it as-is; the rest use a RAG_ prefix to stay out of the wrapped
// server's namespace.
const (
	envPort     = "PORT"
	envVariant  = "RAG_VARIANT"
	envAppRoot  = "RAG_APP_ROOT"
	envDataDir  = "RAG_DATA_DIR"
	envLogDir   = "RAG_LOG_DIR"
	envTimezone = "TZ"
)

// Load builds the resolved Config from flags, environment and the optional
// sonshid config file. flags may be nil (environment and defaults only).
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	for key, env := range map[string]string{
		"variant":  envVariant,
		"port":     envPort,
		"app_root": envAppRoot,
		"data_dir": envDataDir,
		"log_dir":  envLogDir,
		"timezone": envTimezone,
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetConfigName("sonshid")
	v.AddConfigPath("/app")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"variant":  "variant",
			"port":     "port",
			"host":     "host",
			"app_root": "app-root",
			"data_dir": "data-dir",
			"log_dir":  "log-dir",
			"timezone": "timezone",
		} {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}

	var raw RawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return Resolve(raw)
}
