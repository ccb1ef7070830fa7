package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/internal/repository"
	"github.com/tkreindler/InventoryManagementAPI/pkg/common"
)

const superUsername = "admin"

// checkSuper makes sure the admin account exists and can log in.
func (a *Application) checkSuper() {
	ctx := context.Background()
	users := repository.NewGormUserRepository(a.gormDB)

	password := a.appConfig.System.AdminPassword
	if password == "" {
		password = "inventory"
	}

	user, err := users.GetByUsername(ctx, superUsername)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := common.HashPassword(password)
		if err != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(err))
			return
		}
		if err := users.Create(ctx, &domain.User{Username: superUsername, PasswordHash: hash}); err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin", zap.Error(err))
		return
	}

	if strings.TrimSpace(user.PasswordHash) != "" {
		return
	}

	hash, err := common.HashPassword(password)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}
	if err := users.UpdatePasswordHash(ctx, superUsername, hash); err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin account", zap.String("username", superUsername))
}
