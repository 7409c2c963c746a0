// Package config defines runtime configuration for the launcher.
//
// Configuration sources (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (PORT is supplied by Railway at deploy time)
//  3. Optional config file (/app/sonshid.yaml or ./sonshid.yaml)
//  4. Variant defaults
//
// Defaulting is a pure function (Resolve) over a RawConfig snapshot, so port
// resolution is testable without touching the process environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPort indicates the port signal is not a valid TCP port.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidVariant indicates an unknown build variant name.
	ErrInvalidVariant = errors.New("invalid variant")
)

// Variant names one of the two build flavours this repo ships: the full
// RAGFlow image and the bundled simple server. The two differ only in
// default port, health endpoints and how the server process is started.
type Variant string

const (
	// VariantRAGFlow is the full RAGFlow image. Its entrypoint script reads
	// PORT from the environment and binds 9380 when unset.
	VariantRAGFlow Variant = "ragflow"

	// VariantSimple is the bundled FastAPI server, started directly with
	// --host/--port arguments. Defaults to 8000.
	VariantSimple Variant = "simple"
)

// ParseVariant converts a variant name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantRAGFlow:
		return VariantRAGFlow, nil
	case VariantSimple:
		return VariantSimple, nil
	default:
		return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidVariant, s, VariantRAGFlow, VariantSimple)
	}
}

// DefaultPort returns the port the variant binds when no port signal is set.
func (v Variant) DefaultPort() int {
	if v == VariantSimple {
		return 8000
	}
	return 9380
}

// HealthPaths returns the health endpoints to probe, in order. The first
// path is the variant's primary endpoint; later entries are fallbacks.
func (v Variant) HealthPaths() []string {
	if v == VariantSimple {
		return []string{"/health", "/"}
	}
	return []string{"/api/healthz", "/health"}
}

// RawConfig is the unresolved configuration snapshot: values exactly as they
// arrived from flags, environment or file. Port stays a string so "unset or
// empty" is distinguishable from an explicit value.
type RawConfig struct {
	Variant  string `mapstructure:"variant"`
	Port     string `mapstructure:"port"`
	Host     string `mapstructure:"host"`
	AppRoot  string `mapstructure:"app_root"`
	DataDir  string `mapstructure:"data_dir"`
	LogDir   string `mapstructure:"log_dir"`
	Timezone string `mapstructure:"timezone"`
}

// Config is the resolved runtime configuration handed to the orchestrator.
type Config struct {
	Variant  Variant `json:"variant"`
	Port     int     `json:"port"`
	Host     string  `json:"host"`
	AppRoot  string  `json:"app_root"`
	DataDir  string  `json:"data_dir"`
	LogDir   string  `json:"log_dir"`
	Timezone string  `json:"timezone"`
}

// Resolve applies variant defaults to raw and validates the result.
// An empty port signal resolves to the variant default; a present signal
// must parse as a TCP port (1–65535) or resolution fails.
func Resolve(raw RawConfig) (Config, error) {
	variant := VariantRAGFlow
	if raw.Variant != "" {
		v, err := ParseVariant(raw.Variant)
		if err != nil {
			return Config{}, err
		}
		variant = v
	}

	port := variant.DefaultPort()
	if s := strings.TrimSpace(raw.Port); s != "" {
		p, err := ParsePort(s)
		if err != nil {
			return Config{}, err
		}
		port = p
	}

	cfg := Config{
		Variant:  variant,
		Port:     port,
		Host:     raw.Host,
		AppRoot:  raw.AppRoot,
		DataDir:  raw.DataDir,
		LogDir:   raw.LogDir,
		Timezone: raw.Timezone,
	}
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.AppRoot == "" {
		cfg.AppRoot = "/app"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = cfg.AppRoot + "/data/sonshi"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = cfg.AppRoot + "/logs"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Tokyo"
	}
	return cfg, nil
}

// ParsePort parses s as a TCP port number.
func ParsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPort, s)
	}
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("%w: %d out of range 1-65535", ErrInvalidPort, p)
	}
	return p, nil
}
