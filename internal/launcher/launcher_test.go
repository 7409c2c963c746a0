package launcher

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/NOGUCHILin/sonshi-ragflow/internal/config"
)

func TestBuildSpecSimple(t *testing.T) {
	t.Parallel()

	cfg, err := config.Resolve(config.RawConfig{Variant: "simple", Port: "4000"})
	if err != nil {
		t.Fatal(err)
	}

	spec := BuildSpec(cfg, []string{"PATH=/usr/bin"})

	if spec.Path != "python3" {
		t.Errorf("Path = %q, want python3", spec.Path)
	}
	want := []string{"/app/simple-rag-server.py", "--host", "0.0.0.0", "--port", "4000"}
	if !reflect.DeepEqual(spec.Args, want) {
		t.Errorf("Args = %v, want %v", spec.Args, want)
	}
	if spec.Dir != "/app" {
		t.Errorf("Dir = %q, want /app", spec.Dir)
	}
}

func TestBuildSpecSimpleDefaultPort(t *testing.T) {
	t.Parallel()

	cfg, err := config.Resolve(config.RawConfig{Variant: "simple"})
	if err != nil {
		t.Fatal(err)
	}

	spec := BuildSpec(cfg, nil)
	if !slices.Contains(spec.Args, "8000") {
		t.Errorf("Args = %v, want to contain default port 8000", spec.Args)
	}
	if !slices.Contains(spec.Env, "PORT=8000") {
		t.Errorf("Env = %v, want to contain PORT=8000", spec.Env)
	}
}

func TestBuildSpecRAGFlow(t *testing.T) {
	t.Parallel()

	cfg, err := config.Resolve(config.RawConfig{})
	if err != nil {
		t.Fatal(err)
	}

	spec := BuildSpec(cfg, nil)

	if spec.Path != "/app/entrypoint.sh" {
		t.Errorf("Path = %q, want /app/entrypoint.sh", spec.Path)
	}
	if len(spec.Args) != 0 {
		t.Errorf("Args = %v, want none (entrypoint reads PORT)", spec.Args)
	}
	if !slices.Contains(spec.Env, "PORT=9380") {
		t.Errorf("Env = %v, want to contain PORT=9380", spec.Env)
	}
}

func TestBuildSpecEnv(t *testing.T) {
	t.Parallel()

	cfg, err := config.Resolve(config.RawConfig{Port: "4000", AppRoot: "/srv/rag"})
	if err != nil {
		t.Fatal(err)
	}

	base := []string{"PATH=/usr/bin", "PORT=1111", "TZ=UTC"}
	spec := BuildSpec(cfg, base)

	for _, want := range []string{"PORT=4000", "TZ=Asia/Tokyo", "WORKDIR=/srv/rag", "PATH=/usr/bin"} {
		if !slices.Contains(spec.Env, want) {
			t.Errorf("Env = %v, want to contain %q", spec.Env, want)
		}
	}
	// Inherited PORT/TZ must be replaced, not duplicated.
	for _, kv := range spec.Env {
		if kv == "PORT=1111" || kv == "TZ=UTC" {
			t.Errorf("Env still contains stale entry %q", kv)
		}
	}
}

func TestMergeEnv(t *testing.T) {
	t.Parallel()

	got := mergeEnv([]string{"A=1", "B=2"}, "B=3", "C=4")

	counts := map[string]int{}
	for _, kv := range got {
		key, _, _ := strings.Cut(kv, "=")
		counts[key]++
	}
	for _, key := range []string{"A", "B", "C"} {
		if counts[key] != 1 {
			t.Errorf("key %s appears %d times in %v", key, counts[key], got)
		}
	}
	if !slices.Contains(got, "B=3") {
		t.Errorf("override lost: %v", got)
	}
}
