package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/internal/repository"
	"github.com/tkreindler/InventoryManagementAPI/internal/webserver"
)

type itemTypePayload struct {
	UPC      int64   `json:"upc,string" validate:"required,gt=0"`
	Name     *string `json:"name" validate:"omitempty,max=200"`
	ImageURL *string `json:"image_url" validate:"omitempty,max=1024"`
}

func (p *itemTypePayload) normalize() {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
		if name == "" {
			p.Name = nil
		}
	}
	if p.ImageURL != nil && strings.TrimSpace(*p.ImageURL) == "" {
		p.ImageURL = nil
	}
}

// registerItemTypeRoutes registers item type CRUD routes
func registerItemTypeRoutes() {
	webserver.ApiGET("/itemtypes", listItemTypes)
	webserver.ApiGET("/itemtypes/:upc", getItemType)
	webserver.ApiPOST("/itemtypes", createItemType)
	webserver.ApiPUT("/itemtypes/:upc", updateItemType)
	webserver.ApiDELETE("/itemtypes/:upc", deleteItemType)
}

func listItemTypes(c echo.Context) error {
	types, err := itemTypeRepo(c).List(c.Request().Context())
	if err != nil {
		return databaseError(c, "Failed to query item types", err)
	}
	return ok(c, types)
}

func getItemType(c echo.Context) error {
	upc, err := parseIDParam(c, "upc")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_UPC", "Invalid UPC", nil)
	}

	t, err := itemTypeRepo(c).GetByUPC(c.Request().Context(), upc)
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "ITEM_TYPE_NOT_FOUND", "Item type not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to query item type", err)
	}
	return ok(c, t)
}

func createItemType(c echo.Context) error {
	var payload itemTypePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item type parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	payload.normalize()

	ctx := c.Request().Context()
	repo := itemTypeRepo(c)
	exists, err := repo.Exists(ctx, payload.UPC)
	if err != nil {
		return databaseError(c, "Failed to query item type", err)
	}
	if exists {
		return fail(c, http.StatusConflict, "ITEM_TYPE_EXISTS", "An item type with this UPC already exists", nil)
	}
	if payload.Name != nil {
		taken, err := repo.NameTaken(ctx, *payload.Name, payload.UPC)
		if err != nil {
			return databaseError(c, "Failed to query item type", err)
		}
		if taken {
			return fail(c, http.StatusConflict, "ITEM_TYPE_EXISTS", "An item type with this name already exists", nil)
		}
	}

	t := domain.ItemType{UPC: payload.UPC, Name: payload.Name, ImageURL: payload.ImageURL}
	if err := repo.Create(ctx, &t); err != nil {
		return databaseError(c, "Failed to create item type", err)
	}
	return ok(c, t)
}

func updateItemType(c echo.Context) error {
	upc, err := parseIDParam(c, "upc")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_UPC", "Invalid UPC", nil)
	}

	var payload itemTypePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item type parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	payload.normalize()

	if payload.UPC != upc {
		return fail(c, http.StatusConflict, "UPC_IMMUTABLE", "The UPC of an item type cannot be changed", nil)
	}

	ctx := c.Request().Context()
	repo := itemTypeRepo(c)
	t, err := repo.GetByUPC(ctx, upc)
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "ITEM_TYPE_NOT_FOUND", "Item type not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to query item type", err)
	}

	if payload.Name != nil {
		taken, err := repo.NameTaken(ctx, *payload.Name, upc)
		if err != nil {
			return databaseError(c, "Failed to query item type", err)
		}
		if taken {
			return fail(c, http.StatusConflict, "ITEM_TYPE_EXISTS", "An item type with this name already exists", nil)
		}
	}

	t.Name = payload.Name
	t.ImageURL = payload.ImageURL
	if err := repo.Update(ctx, t); err != nil {
		return databaseError(c, "Failed to update item type", err)
	}
	return ok(c, t)
}

func deleteItemType(c echo.Context) error {
	upc, err := parseIDParam(c, "upc")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_UPC", "Invalid UPC", nil)
	}

	err = itemTypeRepo(c).Delete(c.Request().Context(), upc)
	switch {
	case errors.Is(err, repository.ErrItemTypeInUse):
		return fail(c, http.StatusConflict, "ITEM_TYPE_IN_USE", "Item type is referenced by items and cannot be deleted", nil)
	case isNotFound(err):
		return fail(c, http.StatusNotFound, "ITEM_TYPE_NOT_FOUND", "Item type not found", nil)
	case err != nil:
		return databaseError(c, "Failed to delete item type", err)
	}
	return ok(c, map[string]interface{}{"upc": upc})
}
