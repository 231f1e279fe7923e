package service

import (
	"context"
	"net/http"

	"events-cms/internal/model"
)

func (c *Client) GetBanners(ctx context.Context) model.ApiResponse[[]model.Banner] {
	return call[[]model.Banner](ctx, c, http.MethodGet, "/api/v1/banners", nil)
}

func (c *Client) GetBannerTexts(ctx context.Context) model.ApiResponse[[]model.BannerText] {
	return call[[]model.BannerText](ctx, c, http.MethodGet, "/api/v1/banner-texts", nil)
}

func (c *Client) GetButtonTexts(ctx context.Context) model.ApiResponse[[]model.ButtonText] {
	return call[[]model.ButtonText](ctx, c, http.MethodGet, "/api/v1/button-texts", nil)
}

func (c *Client) GetIntroItems(ctx context.Context) model.ApiResponse[[]model.IntroItem] {
	return call[[]model.IntroItem](ctx, c, http.MethodGet, "/api/v1/intro-items", nil)
}
