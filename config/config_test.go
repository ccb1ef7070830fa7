package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "inventory.yml")
	yml := "system:\n" +
		"  workdir: " + dir + "\n" +
		"  location: America/Los_Angeles\n" +
		"web:\n" +
		"  port: 9090\n" +
		"database:\n" +
		"  type: sqlite\n" +
		"  name: test\n" +
		"backup:\n" +
		"  enabled: true\n" +
		"  keep: 3\n"
	if err := os.WriteFile(cfile, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfile)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Web.Port != 9090 || cfg.Database.Type != "sqlite" || cfg.System.Location != "America/Los_Angeles" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Backup.Enabled || cfg.Backup.Keep != 3 || cfg.Backup.Schedule != "@daily" {
		t.Errorf("backup = %+v, defaults should survive partial files", cfg.Backup)
	}
	if cfg.Web.Host != "0.0.0.0" {
		t.Errorf("Web.Host = %q, want default", cfg.Web.Host)
	}
	for _, d := range []string{cfg.GetLogDir(), cfg.GetDataDir(), cfg.GetBackupDir()} {
		if !isDir(d) {
			t.Errorf("%s was not created", d)
		}
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	cfile := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(cfile, []byte("web: [port"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(cfile); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"INVENTORY_WEB_PORT":       "7000",
		"INVENTORY_SYSTEM_DEBUG":   "true",
		"INVENTORY_DB_MAX_CONN":    "not-a-number",
		"INVENTORY_BACKUP_ENABLED": "1",
		"DATABASE_URL":             "postgres://u:p@db.example:5432/inv",
		"INVENTORY_DB_TYPE":        "sqlite",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultAppConfig()
	applyEnv(cfg, lookup)

	if cfg.Web.Port != 7000 {
		t.Errorf("Web.Port = %d", cfg.Web.Port)
	}
	if !cfg.System.Debug || !cfg.Backup.Enabled {
		t.Error("bool overrides not applied")
	}
	if cfg.Database.MaxConn != 20 {
		t.Errorf("invalid int should keep default, got %d", cfg.Database.MaxConn)
	}
	if cfg.Database.URL != "postgres://u:p@db.example:5432/inv" || cfg.Database.Type != "postgres" {
		t.Errorf("DATABASE_URL not applied: %+v", cfg.Database)
	}
}

func isDir(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}
