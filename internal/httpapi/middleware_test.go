package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirePlayerID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		setupContext   func(c echo.Context)
		expectedStatus int
		expectedID     string
		expectError    bool
	}{
		{
			name: "valid token",
			setupContext: func(c echo.Context) {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "player-123"})
				c.Set("user", token)
			},
			expectedStatus: http.StatusOK,
			expectedID:     "player-123",
		},
		{
			name:           "missing token",
			setupContext:   func(c echo.Context) {},
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name: "invalid token type",
			setupContext: func(c echo.Context) {
				c.Set("user", "not-a-jwt-token")
			},
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name: "invalid claims type",
			setupContext: func(c echo.Context) {
				c.Set("user", &jwt.Token{Claims: &jwt.RegisteredClaims{}})
			},
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name: "missing subject claim",
			setupContext: func(c echo.Context) {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "nobody"})
				c.Set("user", token)
			},
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name: "empty subject claim",
			setupContext: func(c echo.Context) {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": ""})
				c.Set("user", token)
			},
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			tt.setupContext(c)

			next := func(c echo.Context) error { return c.String(http.StatusOK, "OK") }
			err := RequirePlayerID(next)(c)

			if tt.expectError {
				require.Error(t, err)
				var he *echo.HTTPError
				require.True(t, errors.As(err, &he))
				assert.Equal(t, tt.expectedStatus, he.Code)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, c.Get("player_id"))
			}
		})
	}
}
