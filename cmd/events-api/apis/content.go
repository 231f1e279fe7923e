package apis

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"events-cms/internal/model"
)

type IContentRepo interface {
	ListBanners(ctx context.Context) ([]model.Banner, error)
	ListBannerTexts(ctx context.Context) ([]model.BannerText, error)
	ListButtonTexts(ctx context.Context) ([]model.ButtonText, error)
	ListIntroItems(ctx context.Context) ([]model.IntroItem, error)
}

// ContentAPI serves the read-only display content of the public site.
type ContentAPI struct {
	contentRepo IContentRepo
}

func NewContentAPI(contentRepo IContentRepo) *ContentAPI {
	return &ContentAPI{
		contentRepo: contentRepo,
	}
}

func (a *ContentAPI) Setup(g *echo.Group) {
	g.GET("/banners", listHandler(a.contentRepo.ListBanners))
	g.GET("/banner-texts", listHandler(a.contentRepo.ListBannerTexts))
	g.GET("/button-texts", listHandler(a.contentRepo.ListButtonTexts))
	g.GET("/intro-items", listHandler(a.contentRepo.ListIntroItems))
}

func listHandler[T any](load func(context.Context) ([]T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := load(c.Request().Context())
		if err != nil {
			return c.JSON(
				errorStatus(err),
				model.Failure(err.Error()),
			)
		}
		if items == nil {
			items = []T{}
		}

		return c.JSON(
			http.StatusOK,
			model.Success(items, "success"),
		)
	}
}
