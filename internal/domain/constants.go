package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default configuration values
const (
	// DefaultSlotsLimit лимит записей на один слот, если для проекта не настроен свой
	DefaultSlotsLimit = 1

	// CutoffHour граница операционного дня: после 12:00 запись
	// возможна только через один рабочий день
	CutoffHour = 12

	// CooldownDays минимальный интервал между двумя реальными визитами по одному договору
	CooldownDays = 14
)

// TimeSlots фиксированное расписание слотов выдачи ключей
// Каждый слот длится один час
var TimeSlots = []TimeSlot{
	"09:00",
	"10:00",
	"11:00",
	"13:00",
	"14:00",
	"16:00",
}

// SlotsPerDay количество слотов в рабочем дне
var SlotsPerDay = len(TimeSlots)
