package apis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"events-cms/internal/dashboard"
	"events-cms/internal/model"
	"events-cms/internal/permission"
	"events-cms/internal/service"
)

func TestEventAPI_DashboardRoles(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantDelete string
	}{
		{name: "Editor creates, delete refused", role: permission.RoleEditor, wantDelete: "admin role required"},
		{name: "Admin creates and deletes", role: permission.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockEventRepo)
			mockRepo.On("CreateEvent", mock.Anything, mock.Anything).Return(nil).Once()
			mockRepo.On("DeleteEvent", mock.Anything, "e1", fixedNow).Return(nil).Maybe()

			srv := httptest.NewServer(newTestRouter(mockRepo))
			t.Cleanup(srv.Close)
			client := service.NewClient(srv.URL, time.Second, nil).WithToken(issueToken(t, tt.role))

			toasts := &dashboard.Toasts{}
			view := dashboard.NewCreateEventView(context.Background(), client, toasts, time.UTC, func() time.Time { return fixedNow })
			defer view.Close()
			view.Form = dashboard.CreateEventForm{
				Name:      "Spring Fest 2025",
				StartDate: "2025-03-10T09:00",
				EndDate:   "2025-03-12T18:00",
				Year:      2025,
				Month:     3,
			}

			event, err := view.Submit()
			require.NoError(t, err)
			assert.Equal(t, "Spring Fest 2025", event.Name)
			assert.Equal(t, []dashboard.Notification{{Level: dashboard.LevelSuccess, Message: "Event created successfully"}}, toasts.Drain())

			resp := client.DeleteEvent(context.Background(), "e1")
			if tt.wantDelete != "" {
				assert.False(t, resp.Success)
				assert.Equal(t, tt.wantDelete, resp.Error)
				_, err := resp.Unwrap()
				var failure *model.FailureError
				require.ErrorAs(t, err, &failure)
				assert.Equal(t, http.StatusForbidden, failure.Status)
				mockRepo.AssertNotCalled(t, "DeleteEvent", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.True(t, resp.Success)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
