package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"events-cms/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Event{},
		&model.EventDay{},
		&model.Session{},
		&model.Banner{},
		&model.BannerText{},
		&model.ButtonText{},
		&model.IntroItem{},
	)
}

func LoadSeed(path string) (model.Seed, error) {
	var seed model.Seed

	raw, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("read seed file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return seed, fmt.Errorf("parse seed file: %w", err)
	}

	return seed, nil
}

// Seed writes the seed content into tables that are still empty. Tables that
// already hold rows are left alone.
func Seed(ctx context.Context, db *gorm.DB, seed model.Seed, now time.Time) error {
	if err := assignSeedIDs(&seed, now); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedTable(tx, seed.Events); err != nil {
			return fmt.Errorf("seed events: %w", err)
		}
		if err := seedTable(tx, seed.Banners); err != nil {
			return fmt.Errorf("seed banners: %w", err)
		}
		if err := seedTable(tx, seed.BannerTexts); err != nil {
			return fmt.Errorf("seed banner texts: %w", err)
		}
		if err := seedTable(tx, seed.ButtonTexts); err != nil {
			return fmt.Errorf("seed button texts: %w", err)
		}
		if err := seedTable(tx, seed.IntroItems); err != nil {
			return fmt.Errorf("seed intro items: %w", err)
		}
		return nil
	})
}

func seedTable[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	var count int64
	if err := tx.Model(new(T)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return tx.Create(&rows).Error
}

func assignSeedIDs(seed *model.Seed, now time.Time) error {
	var err error
	fill := func(id *string) {
		if err != nil || *id != "" {
			return
		}
		var u uuid.UUID
		u, err = uuid.NewV7()
		*id = u.String()
	}

	for i := range seed.Events {
		event := &seed.Events[i]
		fill(&event.ID)
		event.CreateDate = now
		event.UpdateDate = now
		for j := range event.Days {
			day := &event.Days[j]
			fill(&day.ID)
			for k := range day.Times {
				fill(&day.Times[k].ID)
			}
		}
	}
	for i := range seed.Banners {
		fill(&seed.Banners[i].ID)
	}
	for i := range seed.BannerTexts {
		fill(&seed.BannerTexts[i].ID)
	}
	for i := range seed.ButtonTexts {
		fill(&seed.ButtonTexts[i].ID)
	}
	for i := range seed.IntroItems {
		fill(&seed.IntroItems[i].ID)
	}

	return err
}
