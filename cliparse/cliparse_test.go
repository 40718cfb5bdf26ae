// cliparse/cliparse_test.go
package cliparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_TYPE", "SQLite")
	t.Setenv("IP_HASH_SALT", "test-salt")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.StoreType != StoreSQLite {
		t.Errorf("expected store sqlite, got %q", cfg.StoreType)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("expected origins %v, got %v", want, cfg.AllowedOrigins)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("expected debug level, got %v (%v)", level, err)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("IP_HASH_SALT", "test-salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DefaultSource != "website" {
		t.Errorf("expected default source 'website', got %q", cfg.DefaultSource)
	}
	if cfg.ProductName != "SiikHub" {
		t.Errorf("expected product name 'SiikHub', got %q", cfg.ProductName)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", cfg.Version)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("IP_HASH_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-p", "8080", "-t", "postgres", "-d", "postgres://test", "-ip-salt", "s1", "-source", "mobile"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.IPHashSalt != "s1" {
		t.Errorf("CLI should override env: expected salt s1, got %q", cfg.IPHashSalt)
	}
	if cfg.StoreType != StorePostgres || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected store config: %q %q", cfg.StoreType, cfg.DatabaseURL)
	}
	if cfg.DefaultSource != "mobile" {
		t.Errorf("expected source 'mobile', got %q", cfg.DefaultSource)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", map[string]string{"IP_HASH_SALT": ""}, nil},
		{"postgres without url", map[string]string{"IP_HASH_SALT": "s", "DATABASE_URL": ""}, []string{"-t", "postgres"}},
		{"unknown store", map[string]string{"IP_HASH_SALT": "s"}, []string{"-t", "redis"}},
		{"port out of range", map[string]string{"IP_HASH_SALT": "s"}, []string{"-p", "70000"}},
		{"bad PORT env", map[string]string{"IP_HASH_SALT": "s", "PORT": "abc"}, nil},
		{"bad log level", map[string]string{"IP_HASH_SALT": "s", "LOG_LEVEL": "loud"}, nil},
		{"unknown flag", map[string]string{"IP_HASH_SALT": "s"}, []string{"-x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "WAITLIST_TEST_FROM_FILE=hello\nWAITLIST_TEST_KEEP=theirs\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("WAITLIST_TEST_KEEP", "mine")
	t.Cleanup(func() { os.Unsetenv("WAITLIST_TEST_FROM_FILE") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("WAITLIST_TEST_FROM_FILE"); got != "hello" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("WAITLIST_TEST_KEEP"); got != "mine" {
		t.Errorf("existing env should win, got %q", got)
	}
}
