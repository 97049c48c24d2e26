package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "guardianmed/internal/delivery/context"
	"guardianmed/internal/delivery/http/response"
	domainerrors "guardianmed/internal/domain/errors"
	"guardianmed/internal/domain/service"
	mockSvc "guardianmed/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "wrapped app error",
			err:         errors.Wrap(domainerrors.ErrInvalidChallenge, "code_mismatch"),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "INVALID_CHALLENGE",
			wantMessage: "Invalid OTP or password",
		},
		{
			name:        "transient failure",
			err:         errors.Wrap(domainerrors.ErrTransientFailure, "store_unavailable: dial tcp 10.0.0.5:5432"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "TRANSIENT_FAILURE",
			wantMessage: domainerrors.ErrTransientFailure.Message(),
		},
		{
			name:        "echo http error",
			err:         echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "HTTP_ERROR",
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "unknown error",
			err:         errors.New("pq: relation does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error, please try again later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", nil), rec)

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeResponse(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "10.0.0.5")
			assert.NotContains(t, rec.Body.String(), "code_mismatch")
			assert.NotContains(t, rec.Body.String(), "relation")
		})
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	accountID := uuid.New()
	validClaims := &service.Claims{
		Username:         "alice",
		Roles:            []string{"ROLE_USER"},
		Type:             "access",
		RegisteredClaims: jwt.RegisteredClaims{Subject: accountID.String()},
	}

	tests := []struct {
		name       string
		header     string
		setup      func(m *mockSvc.MockTokenService)
		wantStatus int
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{
			name:   "invalid token",
			header: "Bearer bad",
			setup: func(m *mockSvc.MockTokenService) {
				m.EXPECT().Validate("bad").Return(nil, errors.New("signature is invalid"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "bad subject",
			header: "Bearer nosub",
			setup: func(m *mockSvc.MockTokenService) {
				m.EXPECT().Validate("nosub").Return(&service.Claims{Username: "alice"}, nil)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid",
			header: "Bearer good",
			setup: func(m *mockSvc.MockTokenService) {
				m.EXPECT().Validate("good").Return(validClaims, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := mockSvc.NewMockTokenService(t)
			if tt.setup != nil {
				tt.setup(tokens)
			}
			m := NewAuthMiddleware(tokens)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := m.Authenticate(func(c echo.Context) error {
				identity, ok := deliverycontext.IdentityFrom(c.Request().Context())
				require.True(t, ok)
				assert.Equal(t, deliverycontext.Identity{
					AccountID: accountID,
					Username:  "alice",
					Roles:     []string{"ROLE_USER"},
				}, identity)

				return c.NoContent(http.StatusOK)
			})(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "UNAUTHORIZED", decodeResponse(t, rec).Error.Code)
			}
		})
	}
}
