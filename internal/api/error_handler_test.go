package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/panelkit/admin-console/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "email is required"), http.StatusUnprocessableEntity, "email is required"},
		{"member", fmt.Errorf("delete: %w", domain.ErrMemberNotFound), http.StatusNotFound, "user not found"},
		{"product", domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"email taken", domain.ErrEmailAlreadyExists, http.StatusConflict, "email address is already in use"},
		{"unexpected", errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.msg) {
				t.Fatalf("expected %q in %s", tc.msg, rec.Body.String())
			}
			if strings.Contains(rec.Body.String(), "db exploded") {
				t.Fatalf("internal error leaked")
			}
		})
	}
}
