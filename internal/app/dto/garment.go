package dto

import (
	"rentwear/internal/domain/availability"
	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
)

type Garment struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Sizes          []string `json:"sizes"`
	DailyRateCents int64    `json:"daily_rate_cents"`
	State          string   `json:"state"`

	// Date sets both as lists (structured clients) and comma-joined
	// text (the legacy form-field format).
	AvailableDates    []string `json:"available_dates"`
	ExcludedDates     []string `json:"excluded_dates"`
	BookedDates       []string `json:"booked_dates"`
	AvailableDatesCSV string   `json:"available_dates_csv"`
	ExcludedDatesCSV  string   `json:"excluded_dates_csv"`
}

func MapGarment(g *catalog.Garment, snap availability.Snapshot) Garment {
	if g == nil {
		return Garment{}
	}
	return Garment{
		ID:                string(g.ID),
		Title:             g.Title,
		Description:       g.Description,
		Category:          g.Category,
		Sizes:             append([]string(nil), g.Sizes...),
		DailyRateCents:    g.DailyRateCents,
		State:             string(g.State),
		AvailableDates:    keysToStrings(snap.Available.List()),
		ExcludedDates:     keysToStrings(snap.Excluded.List()),
		BookedDates:       keysToStrings(snap.Booked.List()),
		AvailableDatesCSV: datekey.FormatList(snap.Available),
		ExcludedDatesCSV:  datekey.FormatList(snap.Excluded),
	}
}

func keysToStrings(keys []datekey.DateKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
