package dto

import (
	"rentwear/internal/domain/availability"
)

// CalendarCell is one renderable slot of the month grid. Date is empty
// for the padding cells outside the month.
type CalendarCell struct {
	Date  string `json:"date,omitempty"`
	State string `json:"state,omitempty"`
}

type CalendarMonth struct {
	GarmentID string           `json:"garment_id"`
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	Weeks     [][]CalendarCell `json:"weeks"`
}

func MapCalendarMonth(garmentID string, grid availability.MonthGrid) CalendarMonth {
	out := CalendarMonth{
		GarmentID: garmentID,
		Year:      grid.Year,
		Month:     int(grid.Month),
		Weeks:     make([][]CalendarCell, 0, len(grid.Weeks)),
	}
	for _, week := range grid.Weeks {
		row := make([]CalendarCell, 0, len(week))
		for _, cell := range week {
			if cell.Date == nil {
				row = append(row, CalendarCell{})
				continue
			}
			row = append(row, CalendarCell{Date: string(*cell.Date), State: string(cell.State)})
		}
		out.Weeks = append(out.Weeks, row)
	}
	return out
}
