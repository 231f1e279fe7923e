package apis

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"events-cms/internal/model"
)

type HealthCheckAPI struct {
	db *gorm.DB
}

func NewHealthCheckAPI(db *gorm.DB) *HealthCheckAPI {
	return &HealthCheckAPI{
		db: db,
	}
}

func (a *HealthCheckAPI) Setup(g *echo.Group) {
	g.GET("/healthz", a.healthCheck)
}

func (a *HealthCheckAPI) healthCheck(c echo.Context) error {

	db, err := a.db.DB()
	if err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			model.Failure(err.Error()),
		)
	}

	err = db.PingContext(c.Request().Context())
	if err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			model.Failure(err.Error()),
		)
	}

	return c.JSON(
		http.StatusOK,
		model.Success(model.Empty{}, "healthy"),
	)
}
