package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/internal/webserver"
)

// itemReportRow is one line of the profit report. Amounts are rendered
// from exact decimals, timestamps as RFC 3339 or empty when unset.
type itemReportRow struct {
	ID           string `csv:"Id"`
	ItemTypeUPC  string `csv:"ItemTypeUPC"`
	ItemTypeName string `csv:"ItemTypeName"`
	QRCode       string `csv:"QRCode"`
	ItemStatus   string `csv:"ItemStatus"`
	Expenses     string `csv:"Expenses"`
	Revenue      string `csv:"Revenue"`
	Profit       string `csv:"Profit"`
	Ordered      string `csv:"TimeStampOrdered"`
	Sold         string `csv:"TimeStampSold"`
}

func registerReportRoutes() {
	webserver.ApiGET("/items/report.csv", itemReport)
}

// itemReport accepts the same filters as GET /items.
func itemReport(c echo.Context) error {
	filter, err := parseItemFilter(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILTER", "Invalid item filter", err.Error())
	}

	ctx := c.Request().Context()
	items, err := itemRepo(c).List(ctx, filter)
	if err != nil {
		return databaseError(c, "Failed to query items", err)
	}
	types, err := itemTypeRepo(c).List(ctx)
	if err != nil {
		return databaseError(c, "Failed to query item types", err)
	}

	rows := buildItemReport(items, types)
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "REPORT_ERROR", "Failed to render report", err.Error())
	}

	filename := fmt.Sprintf("ItemReport-%s.csv", time.Now().UTC().Format("20060102T150405Z"))
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func buildItemReport(items []domain.Item, types []domain.ItemType) []itemReportRow {
	names := make(map[int64]string, len(types))
	for _, t := range types {
		names[t.UPC] = t.NameOrEmpty()
	}

	rows := make([]itemReportRow, 0, len(items))
	for _, it := range items {
		row := itemReportRow{
			ID:           fmt.Sprint(it.ID),
			ItemTypeUPC:  fmt.Sprint(it.ItemTypeUPC),
			ItemTypeName: names[it.ItemTypeUPC],
			ItemStatus:   it.ItemStatus.String(),
			Expenses:     it.Expenses().StringFixed(2),
			Revenue:      it.Revenue().StringFixed(2),
			Profit:       it.Profit().StringFixed(2),
			Ordered:      reportTime(it.TimeStampOrdered),
			Sold:         reportTime(it.TimeStampSold),
		}
		if it.QRCode != nil {
			row.QRCode = *it.QRCode
		}
		rows = append(rows, row)
	}
	return rows
}

func reportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
