package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tkreindler/InventoryManagementAPI/config"
	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/internal/interchange"
	"github.com/tkreindler/InventoryManagementAPI/internal/repository"
	"github.com/tkreindler/InventoryManagementAPI/pkg/common"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.System.AdminPassword = "letmein"
	cfg.Database = config.DBConfig{Type: "sqlite", Name: "test"}
	cfg.Backup.Keep = 2

	db, err := getDatabase(cfg.Database, t.TempDir())
	if err != nil {
		t.Fatalf("getDatabase() error = %v", err)
	}
	a := NewApplication(cfg)
	a.OverrideDB(db)
	t.Cleanup(a.Release)

	if err := a.MigrateDB(false); err != nil {
		t.Fatalf("MigrateDB() error = %v", err)
	}
	return a
}

func TestCheckSuperSeedsAdmin(t *testing.T) {
	a := newTestApp(t)
	a.checkSuper()
	a.checkSuper()

	users := repository.NewGormUserRepository(a.DB())
	if n, _ := users.Count(context.Background()); n != 1 {
		t.Fatalf("users = %d, want 1", n)
	}
	admin, err := users.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatal(err)
	}
	if !common.CheckPassword(admin.PasswordHash, "letmein") {
		t.Error("admin password should come from config")
	}
}

func TestCheckSuperRepairsEmptyPassword(t *testing.T) {
	a := newTestApp(t)
	if err := a.DB().Create(&domain.User{Username: "admin", PasswordHash: " "}).Error; err != nil {
		t.Fatal(err)
	}
	a.checkSuper()

	admin, _ := repository.NewGormUserRepository(a.DB()).GetByUsername(context.Background(), "admin")
	if !common.CheckPassword(admin.PasswordHash, "letmein") {
		t.Error("empty admin password was not reset")
	}
}

func TestRunBackup(t *testing.T) {
	a := newTestApp(t)
	name := "Doll"
	if err := a.DB().Create(&domain.ItemType{UPC: 42, Name: &name}).Error; err != nil {
		t.Fatal(err)
	}

	file, err := a.RunBackup()
	if err != nil {
		t.Fatalf("RunBackup() error = %v", err)
	}
	if filepath.Dir(file) != a.Config().GetBackupDir() {
		t.Errorf("backup written to %s", file)
	}

	f, err := os.Open(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ds, err := interchange.ReadWorkbook(f)
	if err != nil {
		t.Fatalf("backup is not a readable workbook: %v", err)
	}
	if len(ds.ItemTypes) != 1 || ds.ItemTypes[0].UPC != 42 {
		t.Errorf("backup item types = %+v", ds.ItemTypes)
	}
}

func TestPruneBackups(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		name := interchange.DumpFileName(base.Add(time.Duration(i) * 24 * time.Hour))
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(other, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := pruneBackups(dir, 2); err != nil {
		t.Fatal(err)
	}

	left, _ := filepath.Glob(filepath.Join(dir, interchange.DumpFilePattern))
	if len(left) != 2 {
		t.Fatalf("left %v, want 2 files", left)
	}
	if filepath.Base(left[0]) != interchange.DumpFileName(base.Add(48*time.Hour)) {
		t.Errorf("oldest kept = %s", filepath.Base(left[0]))
	}
	if !common.FileExists(other) {
		t.Error("unrelated files must not be pruned")
	}
}

func TestInitJobRegistersBackup(t *testing.T) {
	a := newTestApp(t)
	a.appConfig.Backup.Enabled = true
	a.appConfig.Backup.Schedule = "0 30 2 * * *"
	a.initJob()
	if n := len(a.Scheduler().Entries()); n != 1 {
		t.Errorf("cron entries = %d, want 1", n)
	}
}

type fakeBackupFile struct {
	syncErr, closeErr error
	closed            bool
}

func (f *fakeBackupFile) Sync() error { return f.syncErr }

func (f *fakeBackupFile) Close() error {
	f.closed = true
	return f.closeErr
}

func TestCloseBackup(t *testing.T) {
	writeErr := errors.New("export failed")
	syncErr := errors.New("sync failed")
	closeErr := errors.New("close failed")

	tests := []struct {
		name     string
		file     *fakeBackupFile
		writeErr error
		want     error
	}{
		{"ok", &fakeBackupFile{}, nil, nil},
		{"write error wins", &fakeBackupFile{closeErr: closeErr}, writeErr, writeErr},
		{"sync error", &fakeBackupFile{syncErr: syncErr}, nil, syncErr},
		{"close error", &fakeBackupFile{closeErr: closeErr}, nil, closeErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := closeBackup(tt.file, tt.writeErr)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Errorf("closeBackup() = %v, want %v", err, tt.want)
			}
			if !tt.file.closed {
				t.Error("file left open")
			}
		})
	}
}

func TestInitLogsBadTimezone(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.System.Location = "Nowhere/Atlantis"
	cfg.Database = config.DBConfig{Type: "sqlite", Name: "init"}
	cfg.Logger.FileEnable = true
	cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "inventory.log")
	if err := os.MkdirAll(cfg.GetDataDir(), 0o755); err != nil {
		t.Fatal(err)
	}

	a := NewApplication(cfg)
	if err := a.Init(cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	a.Release()

	data, err := os.ReadFile(cfg.Logger.Filename)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "timezone config error") {
		t.Errorf("timezone error not logged, log = %s", data)
	}
}
