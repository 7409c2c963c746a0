package config

import (
	"testing"

	"github.com/spf13/pflag"
)

// Load tests mutate the environment, so none of them run in parallel.

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("RAG_VARIANT", "simple")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("Port = %d, want 4000", cfg.Port)
	}
	if cfg.Variant != VariantSimple {
		t.Errorf("Variant = %q, want %q", cfg.Variant, VariantSimple)
	}
}

func TestLoadEmptyEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RAG_VARIANT", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9380 {
		t.Errorf("Port = %d, want ragflow default 9380", cfg.Port)
	}
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	t.Setenv("PORT", "4000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "", "")
	if err := flags.Set("port", "5000"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("Port = %d, want flag value 5000", cfg.Port)
	}
}

func TestLoadInvalidEnvPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(nil); err == nil {
		t.Fatal("Load with PORT=not-a-port succeeded, want error")
	}
}
