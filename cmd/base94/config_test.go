package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"base94/basen"
	"base94/internal/cache"
	"base94/internal/ctxlog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(configEnv, "")

	path := writeFile(t, "base94.yaml", `
log:
  level: debug
  format: json
codec:
  base: 62
  alphabet: "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
cache:
  driver: bolt
  file: /tmp/cache.db
  timeout: 2s
batch:
  jobs: 3
`)

	have, err := LoadConfig(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	want := Config{
		Log:   ctxlog.Config{Level: "debug", Format: "json"},
		Codec: CodecConfig{Base: 62, Symbols: basen.DefaultSymbols[:62]},
		Cache: cache.Config{Driver: "bolt", File: "/tmp/cache.db", Timeout: 2 * time.Second},
		Batch: BatchConfig{Jobs: 3},
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("LoadConfig (-want +got):\n%s", diff)
	}

	a, err := have.Codec.Alphabet()
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 62 {
		t.Fatalf("alphabet length %d", a.Len())
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(configEnv, "")
	t.Chdir(t.TempDir())

	have, err := LoadConfig(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), have); diff != "" {
		t.Fatalf("LoadConfig (-want +got):\n%s", diff)
	}

	a, err := have.Codec.Alphabet()
	if err != nil || a != basen.Default {
		t.Fatalf("Alphabet = %v, %v", a, err)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	path := writeFile(t, "env.yaml", "codec:\n  base: 16\n")
	t.Setenv(configEnv, path)

	have, err := LoadConfig(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if have.Codec.Base != 16 {
		t.Fatalf("base = %d", have.Codec.Base)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeFile(t, "partial.yaml", "log:\n  level: warn\n")

	have, err := LoadConfig(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if have.Codec.Base != basen.MaxBase || have.Log.Level != "warn" {
		t.Fatalf("config = %+v", have)
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")

	have, err := LoadConfig(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), have); diff != "" {
		t.Fatalf("LoadConfig (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(configEnv, "")

	if _, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit file")
	}

	path := writeFile(t, "unknown.yaml", "codec:\n  radix: 16\n")
	if _, err := LoadConfig(context.Background(), path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
