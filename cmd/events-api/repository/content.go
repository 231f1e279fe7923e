package repository

import (
	"context"

	"gorm.io/gorm"

	"events-cms/internal/model"
)

type ContentRepo struct {
	db *gorm.DB
}

func NewContentRepo(db *gorm.DB) *ContentRepo {
	return &ContentRepo{
		db: db,
	}
}

func list[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	var items []T

	result := db.
		WithContext(ctx).
		Model(new(T)).
		Order(order).
		Find(&items)

	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (r *ContentRepo) ListBanners(ctx context.Context) ([]model.Banner, error) {
	return list[model.Banner](ctx, r.db, "id")
}

func (r *ContentRepo) ListBannerTexts(ctx context.Context) ([]model.BannerText, error) {
	return list[model.BannerText](ctx, r.db, "id")
}

func (r *ContentRepo) ListButtonTexts(ctx context.Context) ([]model.ButtonText, error) {
	return list[model.ButtonText](ctx, r.db, "id")
}

func (r *ContentRepo) ListIntroItems(ctx context.Context) ([]model.IntroItem, error) {
	return list[model.IntroItem](ctx, r.db, "position")
}
