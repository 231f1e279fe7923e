package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"events-cms/internal/model"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

func orderDays(db *gorm.DB) *gorm.DB {
	return db.Order("day_number")
}

func orderSessions(db *gorm.DB) *gorm.DB {
	return db.Order("start_time")
}

func (r *EventRepo) ListEvents(ctx context.Context) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Preload("Days", orderDays).
		Preload("Days.Times", orderSessions).
		Where("delete_date IS NULL").
		Order("start_date").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	for i := range events {
		events[i] = events[i].WithDerived()
	}

	return events, nil
}

func (r *EventRepo) GetEvent(ctx context.Context, id string) (model.Event, error) {

	var event model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Preload("Days", orderDays).
		Preload("Days.Times", orderSessions).
		Where("id = ? AND delete_date IS NULL", id).
		Take(&event)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return model.Event{}, ErrEventNotFound
	}
	if result.Error != nil {
		return model.Event{}, result.Error
	}

	return event.WithDerived(), nil
}

// CreateEvent stores the event together with its days and sessions in one
// transaction.
func (r *EventRepo) CreateEvent(ctx context.Context, event model.Event) error {

	result := r.db.
		WithContext(ctx).
		Create(&event)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// DeleteEvent marks the event deleted. Rows already deleted count as missing.
func (r *EventRepo) DeleteEvent(ctx context.Context, id string, at time.Time) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ? AND delete_date IS NULL", id).
		Updates(map[string]any{
			"delete_date": at,
			"update_date": at,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
