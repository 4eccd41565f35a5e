package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/papacapim")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")

	c, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if c.AppPort != "8080" {
		t.Errorf("AppPort = %q", c.AppPort)
	}
	if c.DatabaseDriver != "postgres" {
		t.Errorf("DatabaseDriver = %q", c.DatabaseDriver)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(c.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v", c.AllowedOrigins)
	}
	if c.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d", c.RateLimitPerMinute)
	}
	if !c.MetricsEnabled || c.RegisterMaxPerIPPerDay != 20 {
		t.Errorf("defaults not applied: %+v", c)
	}
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"DatabaseDriver":"SQLite","DatabaseURL":"file::memory:","JWTSecret":"file-secret-123","AppPort":"4000"}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APP_PORT", "5000")

	c, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if c.DatabaseDriver != "sqlite" {
		t.Errorf("DatabaseDriver = %q", c.DatabaseDriver)
	}
	if c.AppPort != "5000" {
		t.Errorf("env must win over file, AppPort = %q", c.AppPort)
	}
}

func TestLoadFromValidation(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing database url", map[string]string{"JWT_SECRET": "0123456789"}, "DATABASE_URL"},
		{"short secret", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "short"}, "JWT_SECRET"},
		{"bad driver", map[string]string{"DATABASE_URL": "x", "JWT_SECRET": "0123456789", "DB_DRIVER": "oracle"}, "DB_DRIVER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			t.Setenv("JWT_SECRET", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom("")
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}

func TestOpenDatabaseSQLite(t *testing.T) {
	db, err := OpenDatabase("sqlite", "file:config_open?mode=memory&cache=shared", "silent")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	var fk int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		t.Fatal(err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d, want 1", fk)
	}
	for _, idx := range []string{"idx_users_login", "idx_sessions_token", "unique_follow", "unique_like"} {
		var n int64
		if err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = ?", idx).Scan(&n).Error; err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("index %s missing", idx)
		}
	}
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	if _, err := OpenDatabase("oracle", "x", "silent"); err == nil {
		t.Fatal("expected error")
	}
}
