package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/api/middleware"
	"github.com/panelkit/admin-console/internal/core/domain"
	"github.com/panelkit/admin-console/internal/core/service"
)

func withIdentity(id domain.Identity) func(echo.Context) {
	return func(c echo.Context) { c.Set(middleware.IdentityKey, id) }
}

func withID(id string) func(echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
}

func TestDashboardHandler_Overview(t *testing.T) {
	h := NewDashboardHandler(service.NewDirectoryService(zerolog.Nop()))

	resp := decode(t, do(h.Overview, http.MethodGet, "/dashboard", "", withIdentity(managerID)))

	stats, _ := resp["stats"].(map[string]any)
	if stats["members"] != float64(5) || stats["active_members"] != float64(4) {
		t.Fatalf("unexpected member stats %+v", stats)
	}
	if stats["products"] != float64(6) || stats["low_stock"] != float64(1) || stats["out_of_stock"] != float64(1) {
		t.Fatalf("unexpected product stats %+v", stats)
	}
}

func TestDashboardHandler_Users(t *testing.T) {
	h := NewDashboardHandler(service.NewDirectoryService(zerolog.Nop()))

	resp := decode(t, do(h.Users, http.MethodGet, "/dashboard/users?role=manager", "", nil))
	if resp["total"] != float64(2) {
		t.Fatalf("expected 2 managers, got %v", resp["total"])
	}
}

func TestDashboardHandler_DeleteUser(t *testing.T) {
	h := NewDashboardHandler(service.NewDirectoryService(zerolog.Nop()))

	if rec := do(h.DeleteUser, http.MethodDelete, "/dashboard/users/1", "", withID("1")); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := do(h.DeleteUser, http.MethodDelete, "/dashboard/users/abc", "", withID("abc")); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDashboardHandler_Products(t *testing.T) {
	h := NewDashboardHandler(service.NewDirectoryService(zerolog.Nop()))

	resp := decode(t, do(h.Products, http.MethodGet, "/dashboard/products?category=all&search=pro", "", nil))
	if resp["total"] != float64(2) {
		t.Fatalf("expected iPhone 15 Pro and AirPods Pro, got %v", resp["items"])
	}
	if cats, _ := resp["categories"].([]any); len(cats) != 2 {
		t.Fatalf("unexpected categories %v", resp["categories"])
	}
}

func TestDashboardHandler_Analytics(t *testing.T) {
	h := NewDashboardHandler(service.NewDirectoryService(zerolog.Nop()))

	resp := decode(t, do(h.Analytics, http.MethodGet, "/dashboard/analytics", "", nil))

	byStatus, _ := resp["by_status"].(map[string]any)
	if byStatus["in_stock"] != float64(4) || byStatus["low_stock"] != float64(1) || byStatus["out_of_stock"] != float64(1) {
		t.Fatalf("unexpected stock breakdown %+v", byStatus)
	}
	byCat, _ := resp["by_category"].(map[string]any)
	fashion, _ := byCat["fashion"].(map[string]any)
	if fashion["products"] != float64(2) || fashion["units"] != float64(32) {
		t.Fatalf("unexpected fashion figures %+v", fashion)
	}
}

func TestDashboardHandler_Settings(t *testing.T) {
	h := NewDashboardHandler(service.NewDirectoryService(zerolog.Nop()))

	rec := do(h.Settings, http.MethodGet, "/dashboard/settings", "", withIdentity(managerID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	user, _ := decode(t, rec)["user"].(map[string]any)
	if user["email"] != managerID.Email {
		t.Fatalf("unexpected user %+v", user)
	}
}
