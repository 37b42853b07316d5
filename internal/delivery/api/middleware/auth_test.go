package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "bookshelf/internal/delivery/context"
	"bookshelf/internal/domain/service"
	mockService "bookshelf/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newProtectedEcho(tokenSvc service.TokenService) *echo.Echo {
	e := echo.New()
	auth := NewAuthMiddleware(tokenSvc, slog.New(slog.DiscardHandler))

	e.GET("/books", func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}

		return c.JSON(http.StatusOK, map[string]uint{"user_id": userID})
	}, auth.Authenticate)

	return e
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setup      func(m *mockService.MockTokenService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "invalid token",
			header: "Bearer broken",
			setup: func(m *mockService.MockTokenService) {
				m.EXPECT().ValidateToken("broken").Return(nil, errors.New("signature is invalid"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setup: func(m *mockService.MockTokenService) {
				m.EXPECT().ValidateToken("good").Return(&service.Claims{UserID: 7, Email: "ana@x.io"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":7}`,
		},
		{
			name:   "scheme is case insensitive",
			header: "bearer good",
			setup: func(m *mockService.MockTokenService) {
				m.EXPECT().ValidateToken("good").Return(&service.Claims{UserID: 7}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"user_id":7}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mockService.NewMockTokenService(t)
			if tt.setup != nil {
				tt.setup(tokenSvc)
			}

			req := httptest.NewRequest(http.MethodGet, "/books", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			newProtectedEcho(tokenSvc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
				assert.NotContains(t, rec.Body.String(), "details")
			}
		})
	}
}
