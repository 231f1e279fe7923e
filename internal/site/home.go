package site

import (
	"context"
	"html/template"
	"log/slog"
	"sort"
	"time"

	"events-cms/internal/model"
)

type ContentService interface {
	GetAllEvents(ctx context.Context) model.ApiResponse[[]model.Event]
	GetBanners(ctx context.Context) model.ApiResponse[[]model.Banner]
	GetBannerTexts(ctx context.Context) model.ApiResponse[[]model.BannerText]
	GetButtonTexts(ctx context.Context) model.ApiResponse[[]model.ButtonText]
	GetIntroItems(ctx context.Context) model.ApiResponse[[]model.IntroItem]
}

type Intro struct {
	Title string
	Body  template.HTML
}

// Home is everything the landing page shows. Sections whose fetch failed are
// left empty and their messages collected in Errors.
type Home struct {
	Banners     []model.Banner
	BannerTexts []model.BannerText
	Buttons     []model.ButtonText
	Intros      []Intro
	Upcoming    []model.Event
	Errors      []string
}

func LoadHome(ctx context.Context, svc ContentService, now time.Time) Home {
	var home Home
	collect := func(section string, err error) {
		slog.Warn("home section unavailable", slog.String("section", section), slog.String("error", err.Error()))
		home.Errors = append(home.Errors, err.Error())
	}

	if banners, err := svc.GetBanners(ctx).Unwrap(); err != nil {
		collect("banners", err)
	} else {
		home.Banners = banners
	}
	if texts, err := svc.GetBannerTexts(ctx).Unwrap(); err != nil {
		collect("banner_texts", err)
	} else {
		home.BannerTexts = texts
	}
	if buttons, err := svc.GetButtonTexts(ctx).Unwrap(); err != nil {
		collect("button_texts", err)
	} else {
		home.Buttons = buttons
	}
	if items, err := svc.GetIntroItems(ctx).Unwrap(); err != nil {
		collect("intro_items", err)
	} else {
		home.Intros = renderIntros(items)
	}
	if events, err := svc.GetAllEvents(ctx).Unwrap(); err != nil {
		collect("events", err)
	} else {
		home.Upcoming = UpcomingEvents(events, now)
	}
	return home
}

func renderIntros(items []model.IntroItem) []Intro {
	sorted := make([]model.IntroItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	intros := make([]Intro, 0, len(sorted))
	for _, item := range sorted {
		body, err := RenderMarkdown(item.Body)
		if err != nil {
			slog.Warn("intro markdown failed", slog.String("id", item.ID), slog.Any("error", err))
			body = template.HTML(template.HTMLEscapeString(item.Body))
		}
		intros = append(intros, Intro{Title: item.Title, Body: body})
	}
	return intros
}

// UpcomingEvents keeps events that have not ended, soonest first.
func UpcomingEvents(events []model.Event, now time.Time) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, event := range events {
		if event.StatusAt(now) != model.Ended {
			out = append(out, event)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}
