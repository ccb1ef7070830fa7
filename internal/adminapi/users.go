package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/internal/webserver"
	"github.com/tkreindler/InventoryManagementAPI/pkg/common"
)

type userPayload struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type passwordPayload struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func registerUserRoutes() {
	webserver.ApiPOST("/users", createUser)
	webserver.ApiPUT("/users/:username", updateUserPassword)
	webserver.ApiDELETE("/users/:username", deleteUser)
}

func createUser(c echo.Context) error {
	var payload userPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	username := common.NormalizeUsername(payload.Username)
	if username == "" {
		return fail(c, http.StatusBadRequest, "INVALID_USERNAME", "Username is empty", nil)
	}

	ctx := c.Request().Context()
	users := userRepo(c)
	if _, err := users.GetByUsername(ctx, username); err == nil {
		return fail(c, http.StatusConflict, "USER_EXISTS", "User already exists", nil)
	} else if !isNotFound(err) {
		return databaseError(c, "Failed to query user", err)
	}

	hash, err := common.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "PASSWORD_ERROR", "Failed to hash password", nil)
	}
	user := domain.User{Username: username, PasswordHash: hash}
	if err := users.Create(ctx, &user); err != nil {
		return databaseError(c, "Failed to create user", err)
	}
	zap.L().Info("user created", zap.String("username", username), zap.String("by", currentUser(c)))
	return ok(c, user)
}

// updateUserPassword lets a user change their own password only.
func updateUserPassword(c echo.Context) error {
	username := common.NormalizeUsername(c.Param("username"))
	if username != currentUser(c) {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "You can only change your own password", nil)
	}

	var payload passwordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse password", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	hash, err := common.HashPassword(payload.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "PASSWORD_ERROR", "Failed to hash password", nil)
	}
	err = userRepo(c).UpdatePasswordHash(c.Request().Context(), username, hash)
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to update user", err)
	}
	return ok(c, map[string]string{"username": username})
}

func deleteUser(c echo.Context) error {
	username := common.NormalizeUsername(c.Param("username"))
	if username == currentUser(c) {
		return fail(c, http.StatusBadRequest, "CANNOT_DELETE_SELF", "You cannot delete yourself", nil)
	}

	err := userRepo(c).Delete(c.Request().Context(), username)
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to delete user", err)
	}
	GetAppContext(c).Tokens().Revoke(username)
	zap.L().Info("user deleted", zap.String("username", username), zap.String("by", currentUser(c)))
	return ok(c, map[string]string{"username": username})
}
