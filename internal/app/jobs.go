package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tkreindler/InventoryManagementAPI/internal/interchange"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.UTC
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if a.appConfig.Backup.Enabled {
		schedule := a.appConfig.Backup.Schedule
		if schedule == "" {
			schedule = "@daily"
		}
		_, err = a.sched.AddFunc(schedule, a.SchedBackupTask)
		if err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedBackupTask is the cron entry for RunBackup.
func (a *Application) SchedBackupTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	file, err := a.RunBackup()
	if err != nil {
		zap.S().Errorf("backup failed: %v", err)
		return
	}
	zap.S().Infof("backup written to %s", file)
}

// RunBackup exports the whole dataset into the backup directory and prunes
// old backups down to Backup.Keep files.
func (a *Application) RunBackup() (string, error) {
	dir := a.appConfig.GetBackupDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "backup dir")
	}

	file := filepath.Join(dir, interchange.DumpFileName(time.Now()))
	if err := a.writeBackup(file); err != nil {
		_ = os.Remove(file)
		return "", err
	}

	if err := pruneBackups(dir, a.appConfig.Backup.Keep); err != nil {
		zap.S().Warnf("prune backups: %v", err)
	}
	return file, nil
}

func (a *Application) writeBackup(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return errors.Wrap(err, "create backup")
	}
	return closeBackup(f, a.exportTo(f))
}

func (a *Application) exportTo(w io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	return a.Interchange().Export(ctx, w)
}

// closeBackup syncs and closes f. The first of writeErr, the sync error and
// the close error is returned.
func closeBackup(f syncCloser, writeErr error) error {
	if writeErr != nil {
		_ = f.Close()
		return writeErr
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "sync backup")
	}
	return errors.Wrap(f.Close(), "close backup")
}

type syncCloser interface {
	Sync() error
	Close() error
}

// pruneBackups keeps the newest keep dump files in dir. keep <= 0 keeps all.
func pruneBackups(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(dir, interchange.DumpFilePattern))
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}
	// dump names embed a sortable UTC timestamp
	sort.Strings(files)
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(f); err != nil {
			return err
		}
	}
	return nil
}
