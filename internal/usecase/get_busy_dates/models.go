package get_busy_dates

import "time"

// Request входные данные для получения полностью занятых дат
type Request struct {
	ProjectName string
	From        time.Time
	To          time.Time
}

// Response список полностью занятых дат в диапазоне
type Response struct {
	ProjectName string
	BusyDates   []time.Time
}
