package adminapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tkreindler/InventoryManagementAPI/internal/interchange"
	"github.com/tkreindler/InventoryManagementAPI/internal/webserver"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func registerInterchangeRoutes() {
	webserver.ApiGET("/export", exportWorkbook)
	webserver.ApiPUT("/import", importWorkbook)
	webserver.ApiPOST("/backup", runBackup)
}

// exportWorkbook downloads the whole inventory as an xlsx workbook.
func exportWorkbook(c echo.Context) error {
	var buf bytes.Buffer
	if err := GetAppContext(c).Interchange().Export(c.Request().Context(), &buf); err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export inventory", err.Error())
	}

	filename := interchange.DumpFileName(time.Now())
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// importWorkbook replaces the whole inventory with an uploaded workbook,
// taken from the first file of a multipart form or the raw request body.
func importWorkbook(c echo.Context) error {
	body, closeBody, err := workbookUpload(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No workbook uploaded", err.Error())
	}
	defer closeBody()

	res, err := GetAppContext(c).Interchange().Import(c.Request().Context(), body)
	if err != nil {
		return importFailed(c, err)
	}
	return ok(c, res)
}

func workbookUpload(c echo.Context) (io.Reader, func(), error) {
	req := c.Request()
	if !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return req.Body, func() {}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, err
	}
	fields := make([]string, 0, len(form.File))
	for name := range form.File {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		if files := form.File[name]; len(files) > 0 {
			f, err := files[0].Open()
			if err != nil {
				return nil, nil, err
			}
			return f, func() { _ = f.Close() }, nil
		}
	}
	return nil, nil, errors.New("multipart form carries no file")
}

func importFailed(c echo.Context, err error) error {
	const nothingChanged = "Import failed, nothing changed"

	var (
		formatErr *interchange.FormatError
		schemaErr *interchange.SchemaError
		rowErr    *interchange.RowDecodeError
		txErr     *interchange.TransactionError
	)
	switch {
	case errors.As(err, &formatErr):
		return fail(c, http.StatusBadRequest, "INVALID_WORKBOOK", nothingChanged, err.Error())
	case errors.As(err, &schemaErr):
		return fail(c, http.StatusBadRequest, "INVALID_COLUMNS", nothingChanged, schemaErr)
	case errors.As(err, &rowErr):
		return fail(c, http.StatusBadRequest, "INVALID_ROW", nothingChanged, map[string]interface{}{
			"sheet":  rowErr.Sheet,
			"row":    rowErr.Row,
			"column": rowErr.Column,
			"value":  rowErr.Value,
			"reason": rowErr.Err.Error(),
		})
	case errors.As(err, &txErr):
		return fail(c, http.StatusConflict, "IMPORT_CONFLICT", nothingChanged, err.Error())
	}
	return fail(c, http.StatusInternalServerError, "IMPORT_ERROR", nothingChanged, err.Error())
}

// runBackup writes a workbook into the server side backup directory.
func runBackup(c echo.Context) error {
	file, err := GetAppContext(c).RunBackup()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "BACKUP_ERROR", "Failed to write backup", err.Error())
	}
	return ok(c, map[string]string{"file": filepath.Base(file)})
}
