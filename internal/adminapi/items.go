package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/internal/repository"
	"github.com/tkreindler/InventoryManagementAPI/internal/webserver"
	"github.com/tkreindler/InventoryManagementAPI/pkg/common"
)

// registerItemRoutes registers item lookup and CRUD endpoints
func registerItemRoutes() {
	webserver.ApiGET("/items", listItems)
	webserver.ApiGET("/items/id/:id", getItem)
	webserver.ApiGET("/items/qr/:qrcode", getItemByQRCode)
	webserver.ApiGET("/items/ordertoseller/:number", listItemsByOrderToSeller)
	webserver.ApiGET("/items/ordertobuyer/:number", listItemsByOrderToBuyer)
	webserver.ApiGET("/items/type/:upc", listItemsByType)
	webserver.ApiPOST("/items", createItems)
	webserver.ApiPUT("/items/id/:id", updateItem)
	webserver.ApiDELETE("/items/id/:id", deleteItem)
}

// parseItemFilter reads the optional status, ordered_after and
// ordered_before query parameters.
func parseItemFilter(c echo.Context) (repository.ItemFilter, error) {
	var filter repository.ItemFilter
	if v := c.QueryParam("status"); !common.IsEmptyOrNA(v) {
		status, err := domain.ParseItemStatus(strings.TrimSpace(v))
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	for param, dst := range map[string]*time.Time{
		"ordered_after":  &filter.OrderedAfter,
		"ordered_before": &filter.OrderedBefore,
	} {
		v := c.QueryParam(param)
		if common.IsEmptyOrNA(v) {
			continue
		}
		t, err := dateparse.ParseIn(strings.TrimSpace(v), time.UTC)
		if err != nil {
			return filter, err
		}
		*dst = t
	}
	return filter, nil
}

func listItems(c echo.Context) error {
	filter, err := parseItemFilter(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid item filter", err.Error())
	}
	items, err := itemRepo(c).List(c.Request().Context(), filter)
	if err != nil {
		return databaseError(c, "Failed to query items", err)
	}
	return ok(c, items)
}

func getItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}
	item, err := itemRepo(c).GetByID(c.Request().Context(), id)
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to query item", err)
	}
	return ok(c, item)
}

func getItemByQRCode(c echo.Context) error {
	item, err := itemRepo(c).GetByQRCode(c.Request().Context(), c.Param("qrcode"))
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to query item", err)
	}
	return ok(c, item)
}

func listItemsByOrderToSeller(c echo.Context) error {
	items, err := itemRepo(c).ListByOrderNumberToSeller(c.Request().Context(), c.Param("number"))
	if err != nil {
		return databaseError(c, "Failed to query items", err)
	}
	return ok(c, items)
}

func listItemsByOrderToBuyer(c echo.Context) error {
	items, err := itemRepo(c).ListByOrderNumberToBuyer(c.Request().Context(), c.Param("number"))
	if err != nil {
		return databaseError(c, "Failed to query items", err)
	}
	return ok(c, items)
}

func listItemsByType(c echo.Context) error {
	upc, err := parseIDParam(c, "upc")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_UPC", "Invalid UPC", nil)
	}
	ctx := c.Request().Context()
	exists, err := itemTypeRepo(c).Exists(ctx, upc)
	if err != nil {
		return databaseError(c, "Failed to query item type", err)
	}
	if !exists {
		return fail(c, http.StatusNotFound, "ITEM_TYPE_NOT_FOUND", "Item type not found", nil)
	}
	items, err := itemRepo(c).ListByType(ctx, upc)
	if err != nil {
		return databaseError(c, "Failed to query items", err)
	}
	return ok(c, items)
}

// createItems adds a batch of items. The whole batch is rejected when any
// entry references a missing item type or repeats a QR code.
func createItems(c echo.Context) error {
	var payload []domain.ItemInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse items", err.Error())
	}
	if len(payload) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No items given", nil)
	}

	ctx := c.Request().Context()
	seenQR := make(map[string]bool)
	now := time.Now()
	items := make([]domain.Item, 0, len(payload))
	for i := range payload {
		in := payload[i]
		if err := c.Validate(&in); err != nil {
			return handleValidationError(c, err)
		}
		if resp, done := checkItemInput(c, &in, 0); done {
			return resp
		}
		if in.QRCode != nil {
			if seenQR[*in.QRCode] {
				return fail(c, http.StatusConflict, "QR_CODE_EXISTS", "QR code used twice in request", *in.QRCode)
			}
			seenQR[*in.QRCode] = true
		}
		items = append(items, domain.NewItem(in, now))
	}

	if err := itemRepo(c).CreateBatch(ctx, items); err != nil {
		return databaseError(c, "Failed to create items", err)
	}
	return ok(c, items)
}

func updateItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}

	var in domain.ItemInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse item", err.Error())
	}
	if err := c.Validate(&in); err != nil {
		return handleValidationError(c, err)
	}

	ctx := c.Request().Context()
	repo := itemRepo(c)
	item, err := repo.GetByID(ctx, id)
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to query item", err)
	}

	if resp, done := checkItemInput(c, &in, id); done {
		return resp
	}

	item.Apply(in, time.Now())
	if err := repo.Update(ctx, item); err != nil {
		return databaseError(c, "Failed to update item", err)
	}
	return ok(c, item)
}

// checkItemInput normalizes in and verifies its item type exists and its
// QR code is free. done is true when a response has been written.
func checkItemInput(c echo.Context, in *domain.ItemInput, itemID int64) (resp error, done bool) {
	if !in.ItemStatus.Valid() {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown item status", nil), true
	}
	in.QRCode = trimOptional(in.QRCode)
	in.OrderNumberToSeller = trimOptional(in.OrderNumberToSeller)
	in.OrderNumberToBuyer = trimOptional(in.OrderNumberToBuyer)

	ctx := c.Request().Context()
	exists, err := itemTypeRepo(c).Exists(ctx, in.ItemTypeUPC)
	if err != nil {
		return databaseError(c, "Failed to query item type", err), true
	}
	if !exists {
		return fail(c, http.StatusBadRequest, "ITEM_TYPE_NOT_FOUND", "Item type does not exist", in.ItemTypeUPC), true
	}

	if in.QRCode != nil {
		taken, err := itemRepo(c).QRCodeTaken(ctx, *in.QRCode, itemID)
		if err != nil {
			return databaseError(c, "Failed to query item", err), true
		}
		if taken {
			return fail(c, http.StatusConflict, "QR_CODE_EXISTS", "QR code already in use", *in.QRCode), true
		}
	}
	return nil, false
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func deleteItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid item ID", nil)
	}
	err = itemRepo(c).Delete(c.Request().Context(), id)
	if isNotFound(err) {
		return fail(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found", nil)
	} else if err != nil {
		return databaseError(c, "Failed to delete item", err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
