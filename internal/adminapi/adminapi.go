package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/tkreindler/InventoryManagementAPI/internal/app"
	"github.com/tkreindler/InventoryManagementAPI/internal/repository"
	"github.com/tkreindler/InventoryManagementAPI/internal/webserver"
)

// Init registers every API route on the web server.
func Init() {
	registerAuthRoutes()
	registerItemTypeRoutes()
	registerItemRoutes()
	registerUserRoutes()
	registerInterchangeRoutes()
	registerReportRoutes()
}

// Response wraps successful payloads
type Response struct {
	Data interface{} `json:"data"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Data: data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, ErrorResponse{Error: code, Message: message, Details: details})
}

// GetAppContext returns the application context set by the web server.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB().WithContext(c.Request().Context())
}

// currentUser is the username behind the request's auth token, "" when anonymous.
func currentUser(c echo.Context) string {
	name, _ := c.Get(webserver.UsernameKey).(string)
	return name
}

func itemTypeRepo(c echo.Context) repository.ItemTypeRepository {
	return repository.NewGormItemTypeRepository(GetDB(c))
}

func itemRepo(c echo.Context) repository.ItemRepository {
	return repository.NewGormItemRepository(GetDB(c))
}

func userRepo(c echo.Context) repository.UserRepository {
	return repository.NewGormUserRepository(GetDB(c))
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func databaseError(c echo.Context, message string, err error) error {
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", message, err.Error())
}

func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err.Error())
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", details)
}
