package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/tkreindler/InventoryManagementAPI/internal/auth"
	"github.com/tkreindler/InventoryManagementAPI/internal/webserver"
	"github.com/tkreindler/InventoryManagementAPI/pkg/common"
)

type loginPayload struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.ApiGET("/", whoAmI)
	webserver.ApiGET("/checkauth", checkAuth)
	webserver.ApiPOST("/authenticate", authenticate)
}

func whoAmI(c echo.Context) error {
	user := currentUser(c)
	return ok(c, map[string]interface{}{
		"logged_in": user != "",
		"username":  user,
	})
}

// checkAuth only answers 200 once the auth middleware let the request through.
func checkAuth(c echo.Context) error {
	return ok(c, map[string]string{"username": currentUser(c)})
}

func authenticate(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	username := common.NormalizeUsername(payload.Username)

	users := userRepo(c)
	user, err := users.GetByUsername(c.Request().Context(), username)
	if err != nil && !isNotFound(err) {
		return databaseError(c, "Failed to query user", err)
	}
	if err != nil || !common.CheckPassword(user.PasswordHash, payload.Password) {
		zap.L().Warn("login failed", zap.String("username", username), zap.String("remote", c.RealIP()))
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	token := GetAppContext(c).Tokens().Issue(username)
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if err := users.TouchLastLogin(c.Request().Context(), username, time.Now()); err != nil {
		zap.L().Error("failed to record last login", zap.String("username", username), zap.Error(err))
	}
	zap.L().Info("user logged in", zap.String("username", username))
	return ok(c, map[string]string{"username": username})
}
