package permission

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"events-cms/internal/model"
)

func TestRequireAdmin(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	adminToken, err := issuer.Issue("alice", []string{RoleAdmin})
	require.NoError(t, err)
	editorToken, err := issuer.Issue("bob", []string{RoleEditor})
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantError  string
	}{
		{name: "Anonymous", wantStatus: http.StatusUnauthorized, wantError: "authentication required"},
		{name: "Editor", token: editorToken, wantStatus: http.StatusForbidden, wantError: "admin role required"},
		{name: "Admin", token: adminToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/e1", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequireAdmin(NewResolver(testSecret))(func(c echo.Context) error {
				assert.True(t, FromContext(c).IsAdmin())
				return c.NoContent(http.StatusOK)
			})

			assert.NoError(t, handler(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var resp model.ApiResponse[any]
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.False(t, resp.Success)
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestRequireRole_AdminOrEditor(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	tests := []struct {
		name       string
		roles      []string
		wantStatus int
		wantError  string
	}{
		{name: "Admin", roles: []string{RoleAdmin}, wantStatus: http.StatusOK},
		{name: "Editor", roles: []string{RoleEditor}, wantStatus: http.StatusOK},
		{name: "Viewer", roles: []string{"viewer"}, wantStatus: http.StatusForbidden, wantError: "admin or editor role required"},
		{name: "No roles", roles: nil, wantStatus: http.StatusForbidden, wantError: "admin or editor role required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := issuer.Issue("carol", tt.roles)
			require.NoError(t, err)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/events", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequireRole(NewResolver(testSecret), RoleAdmin, RoleEditor)(func(c echo.Context) error {
				assert.Equal(t, "carol", FromContext(c).UserID)
				return c.NoContent(http.StatusOK)
			})

			assert.NoError(t, handler(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var resp model.ApiResponse[any]
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestSession_HasAnyRole(t *testing.T) {
	editor := Session{UserID: "bob", Roles: []string{RoleEditor}}

	assert.True(t, editor.HasAnyRole(RoleAdmin, RoleEditor))
	assert.False(t, editor.HasAnyRole(RoleAdmin))
	assert.False(t, editor.HasAnyRole())
	assert.False(t, Session{Roles: []string{RoleEditor}}.HasAnyRole(RoleEditor), "anonymous sessions hold no roles")
}

func TestAttach_AnonymousByDefault(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	var seen Session
	err := Attach(NewResolver(testSecret))(func(c echo.Context) error {
		seen = FromContext(c)
		return nil
	})(c)

	assert.NoError(t, err)
	assert.False(t, seen.Authenticated())
}
