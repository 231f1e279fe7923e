package apis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"events-cms/internal/model"
)

type MockContentRepo struct {
	mock.Mock
}

func (m *MockContentRepo) ListBanners(ctx context.Context) ([]model.Banner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Banner), args.Error(1)
}

func (m *MockContentRepo) ListBannerTexts(ctx context.Context) ([]model.BannerText, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.BannerText), args.Error(1)
}

func (m *MockContentRepo) ListButtonTexts(ctx context.Context) ([]model.ButtonText, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ButtonText), args.Error(1)
}

func (m *MockContentRepo) ListIntroItems(ctx context.Context) ([]model.IntroItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.IntroItem), args.Error(1)
}

func newContentRouter(repo IContentRepo) *echo.Echo {
	e := echo.New()
	NewContentAPI(repo).Setup(e.Group("/api/v1"))
	return e
}

func TestContentAPI_Lists(t *testing.T) {
	mockRepo := new(MockContentRepo)
	e := newContentRouter(mockRepo)

	mockRepo.On("ListBanners", mock.Anything).Return([]model.Banner{{ID: "b1", Title: "Welcome", Version: 2}}, nil)
	mockRepo.On("ListBannerTexts", mock.Anything).Return([]model.BannerText(nil), nil)
	mockRepo.On("ListButtonTexts", mock.Anything).Return([]model.ButtonText{{ID: "k1", Label: "Join", Href: "/events"}}, nil)
	mockRepo.On("ListIntroItems", mock.Anything).Return([]model.IntroItem{{ID: "i1", Body: "**hi**", Position: 1}}, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/banners", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	banners := decode[[]model.Banner](t, rec)
	assert.Equal(t, 2, (*banners.Data)[0].Version)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/banner-texts", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"message":"success"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/button-texts", nil))
	assert.Equal(t, "/events", (*decode[[]model.ButtonText](t, rec).Data)[0].Href)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/intro-items", nil))
	assert.Equal(t, "**hi**", (*decode[[]model.IntroItem](t, rec).Data)[0].Body)

	mockRepo.AssertExpectations(t)
}

func TestContentAPI_RepositoryError(t *testing.T) {
	mockRepo := new(MockContentRepo)
	e := newContentRouter(mockRepo)

	mockRepo.On("ListIntroItems", mock.Anything).Return([]model.IntroItem(nil), errors.New("relation \"intro_items\" does not exist"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/intro-items", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[[]model.IntroItem](t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "does not exist")
}

func TestHealthCheckAPI(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "Healthy", wantStatus: http.StatusOK, wantBody: "healthy"},
		{name: "Database down", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable, wantBody: "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()

			// gorm pings once while opening
			mock.ExpectPing()
			gormDB, err := gorm.Open(postgres.New(postgres.Config{
				Conn: db,
			}), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Silent),
			})
			require.NoError(t, err)

			mock.ExpectPing().WillReturnError(tt.pingErr)

			e := echo.New()
			NewHealthCheckAPI(gormDB).Setup(e.Group(""))

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
