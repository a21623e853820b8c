package httpserver

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/export"
	"github.com/Skotchmaster/pearline_shop/internal/service"
	"github.com/Skotchmaster/pearline_shop/internal/transport"
	"github.com/Skotchmaster/pearline_shop/internal/util"
	"github.com/Skotchmaster/pearline_shop/pkg/logging"
)

const maxImportSize = 10 << 20

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.ListProducts(ctx, page, size)
	if err != nil {
		return toHTTPError(l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return toHTTPError(l, "search_products_error", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ProductHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.get")

	p, err := h.Svc.GetProduct(ctx, c.Param("barcode"))
	if err != nil {
		return toHTTPError(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) ListByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.by_category")

	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "list_category_products_error", err)
	}
	items, err := h.Svc.ListProductsByCategory(ctx, id)
	if err != nil {
		return toHTTPError(l, "list_category_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_product_error", err)
	}

	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return toHTTPError(l, "create_product_error", err)
	}

	l.Info("product created", "barcode", p.Barcode)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.patch")

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "patch_product_error", err)
	}

	p, err := h.Svc.UpdateProduct(ctx, c.Param("barcode"), req)
	if err != nil {
		return toHTTPError(l, "patch_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete")

	barcode := c.Param("barcode")
	if err := h.Svc.DeleteProduct(ctx, barcode); err != nil {
		return toHTTPError(l, "delete_product_error", err)
	}

	l.Info("product deleted", "barcode", barcode)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted"})
}

func (h *ProductHTTP) DeleteByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete_by_category")

	id, err := uintParam(c, "id")
	if err != nil {
		return toHTTPError(l, "delete_category_products_error", err)
	}
	n, err := h.Svc.DeleteProductsByCategory(ctx, id)
	if err != nil {
		return toHTTPError(l, "delete_category_products_error", err)
	}
	return c.JSON(http.StatusOK, transport.DeletedResponse{Message: "Products deleted", Deleted: int64(n)})
}

func (h *ProductHTTP) BulkImport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.bulk")

	var rows []transport.CreateProductRequest
	if err := c.Bind(&rows); err != nil {
		return badBody(l, "bulk_import_error", err)
	}
	return h.importRows(c, l, rows)
}

// ImportXLSX takes a multipart "file" laid out as export.ProductColumns.
func (h *ProductHTTP) ImportXLSX(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.import")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("import_products_error", "status", http.StatusBadRequest, "reason", "missing file", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxImportSize {
		l.Warn("import_products_error", "status", http.StatusRequestEntityTooLarge, "size", fh.Size)
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return toHTTPError(l, "import_products_error", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImportSize))
	if err != nil {
		return toHTTPError(l, "import_products_error", err)
	}

	rows, err := export.ReadProductsXLSX(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, export.ErrBadSheet) {
			l.Warn("import_products_error", "status", http.StatusBadRequest, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return toHTTPError(l, "import_products_error", err)
	}
	return h.importRows(c, l, rows)
}

func (h *ProductHTTP) importRows(c echo.Context, l *slog.Logger, rows []transport.CreateProductRequest) error {
	n, err := h.Svc.BulkImport(c.Request().Context(), rows)
	if err != nil {
		return toHTTPError(l, "import_products_error", err)
	}
	l.Info("products imported", "count", n)
	return c.JSON(http.StatusCreated, transport.BulkImportResponse{Imported: n})
}

func (h *ProductHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.list")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return toHTTPError(l, "list_categories_error", err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *ProductHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "categories.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_category_error", err)
	}

	cat, err := h.Svc.CreateCategory(ctx, req.Name)
	if err != nil {
		return toHTTPError(l, "create_category_error", err)
	}
	return c.JSON(http.StatusCreated, cat)
}
