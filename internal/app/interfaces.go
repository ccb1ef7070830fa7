package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/tkreindler/InventoryManagementAPI/config"
	"github.com/tkreindler/InventoryManagementAPI/internal/auth"
	"github.com/tkreindler/InventoryManagementAPI/internal/interchange"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// TokenProvider provides the login token store
type TokenProvider interface {
	Tokens() *auth.TokenStore
}

// InterchangeProvider provides workbook export and import
type InterchangeProvider interface {
	Interchange() *interchange.Service
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	TokenProvider
	InterchangeProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
	// RunBackup writes an export workbook to the backup directory and
	// returns its path
	RunBackup() (string, error)
}
