package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadEnvironmentOverridesDefault(t *testing.T) {
	t.Setenv("LIQUER_CACHE_CAPACITY", "4096")
	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheCapacity != 4096 {
		t.Fatalf("expected env override to win over default, got %d", cfg.CacheCapacity)
	}
}

func TestLoadFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("LIQUER_LOG_LEVEL", "debug")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", Defaults().LogLevel, "")
	if err := fs.Set("log-level", "error"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	cfg, err := Load(fs, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("expected the explicit flag to win over the environment, got %q", cfg.LogLevel)
	}
}

func TestBindEnvOverridesAppliesUnchangedFlagsOnly(t *testing.T) {
	t.Setenv("LIQUER_STORE_ROOT", "/data/from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("store-root", "", "")

	if err := BindEnvOverrides(fs); err != nil {
		t.Fatalf("BindEnvOverrides: %v", err)
	}
	got, err := fs.GetString("store-root")
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if got != "/data/from-env" {
		t.Fatalf("expected unchanged flag to pick up the env value, got %q", got)
	}
}

func TestBindEnvOverridesSkipsExplicitFlag(t *testing.T) {
	t.Setenv("LIQUER_STORE_ROOT", "/data/from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("store-root", "", "")
	if err := fs.Set("store-root", "/data/from-flag"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := BindEnvOverrides(fs); err != nil {
		t.Fatalf("BindEnvOverrides: %v", err)
	}
	got, err := fs.GetString("store-root")
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if got != "/data/from-flag" {
		t.Fatalf("expected the explicit flag to survive, got %q", got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "liquer-*.yaml")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.WriteString("cache-capacity: 77\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	f.Close()

	cfg, err := Load(nil, f.Name())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheCapacity != 77 {
		t.Fatalf("expected the config file value, got %d", cfg.CacheCapacity)
	}
}
