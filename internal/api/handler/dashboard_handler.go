package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/ports"
)

// DashboardHandler serves the guarded console views. Every route is expected
// to sit behind the guard middleware, which injects the identity.
type DashboardHandler struct {
	directory ports.DirectoryService
}

func NewDashboardHandler(directory ports.DirectoryService) *DashboardHandler {
	return &DashboardHandler{directory: directory}
}

// Overview handles GET /dashboard.
//
// @Summary      Dashboard overview
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  overviewResponse
// @Success      302
// @Failure      403  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var stats overviewStats
	for _, m := range h.directory.ListMembers(ctx, ports.ListMembersFilter{}) {
		stats.Members++
		if m.Status == domain.MemberActive {
			stats.ActiveMembers++
		}
	}
	for _, p := range h.directory.ListProducts(ctx, ports.ListProductsFilter{}) {
		stats.Products++
		switch p.Status {
		case domain.StockLow:
			stats.LowStock++
		case domain.StockOut:
			stats.OutOfStock++
		}
	}

	return c.JSON(http.StatusOK, overviewResponse{User: identity, Stats: stats})
}

// Users handles GET /dashboard/users.
//
// @Summary      List console users
// @Tags         dashboard
// @Produce      json
// @Param        search  query     string  false  "Name or email contains"
// @Param        role    query     string  false  "Role filter, or all"
// @Success      200     {object}  membersResponse
// @Failure      403     {object}  errorResponse
// @Router       /dashboard/users [get]
func (h *DashboardHandler) Users(c echo.Context) error {
	items := h.directory.ListMembers(c.Request().Context(), ports.ListMembersFilter{
		Search: c.QueryParam("search"),
		Role:   c.QueryParam("role"),
	})
	return c.JSON(http.StatusOK, membersResponse{Items: items, Total: len(items)})
}

// DeleteUser handles DELETE /dashboard/users/:id.
//
// @Summary      Delete a console user
// @Tags         dashboard
// @Param        id   path  int  true  "User ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/users/{id} [delete]
func (h *DashboardHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.directory.DeleteMember(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Products handles GET /dashboard/products.
//
// @Summary      List products
// @Tags         dashboard
// @Produce      json
// @Param        search    query     string  false  "Name or description contains"
// @Param        category  query     string  false  "Category filter, or all"
// @Success      200       {object}  productsResponse
// @Router       /dashboard/products [get]
func (h *DashboardHandler) Products(c echo.Context) error {
	items := h.directory.ListProducts(c.Request().Context(), ports.ListProductsFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	})
	return c.JSON(http.StatusOK, productsResponse{
		Items:      items,
		Total:      len(items),
		Categories: h.directory.Categories(),
	})
}

// DeleteProduct handles DELETE /dashboard/products/:id.
//
// @Summary      Delete a product
// @Tags         dashboard
// @Param        id   path  int  true  "Product ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /dashboard/products/{id} [delete]
func (h *DashboardHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.directory.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddProductView handles GET /dashboard/products/add.
//
// @Summary      Add product view
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  addProductViewResponse
// @Router       /dashboard/products/add [get]
func (h *DashboardHandler) AddProductView(c echo.Context) error {
	return c.JSON(http.StatusOK, addProductViewResponse{View: "add_product", Categories: h.directory.Categories()})
}

// Analytics handles GET /dashboard/analytics.
//
// @Summary      Catalogue analytics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  analyticsResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/analytics [get]
func (h *DashboardHandler) Analytics(c echo.Context) error {
	resp := analyticsResponse{
		ByCategory: make(map[string]categoryFigures),
		ByStatus:   make(map[domain.StockStatus]int),
	}
	for _, p := range h.directory.ListProducts(c.Request().Context(), ports.ListProductsFilter{}) {
		fig := resp.ByCategory[p.Category]
		fig.Products++
		fig.Units += p.Stock
		fig.StockValue += float64(p.Stock) * p.Price
		resp.ByCategory[p.Category] = fig
		resp.ByStatus[p.Status]++
	}
	return c.JSON(http.StatusOK, resp)
}

// Settings handles GET /dashboard/settings.
//
// @Summary      Account settings
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Router       /dashboard/settings [get]
func (h *DashboardHandler) Settings(c echo.Context) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResponse{User: identity})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
