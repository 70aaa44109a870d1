package reconcile_contracts

import (
	"time"
)

// ImportRecord одна строка импортируемого реестра договоров
type ImportRecord struct {
	AptNum       string
	Entrance     string
	Floor        int
	ContractNum  string
	ClientFIO    string
	DeliveryDate time.Time
}

// DiffRequest входные данные для сверки реестра с базой
type DiffRequest struct {
	ProjectName string
	Records     []ImportRecord
}

// FieldChange изменение одного поля договора
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// NewEntry договор, отсутствующий в базе
type NewEntry struct {
	Record ImportRecord
}

// FieldUpdateEntry договор с изменившимися полями, номер прежний
type FieldUpdateEntry struct {
	ContractID int64
	AptNum     string
	Changes    []FieldChange
}

// NumberChangeEntry договор со сменившимся номером — чувствительный случай:
// за старым номером могут стоять владелец и действующие записи
type NumberChangeEntry struct {
	ContractID     int64
	AptNum         string
	OldNum         string
	NewNum         string
	ActiveBookings int
	OwnerTgID      *int64
	Changes        []FieldChange
}

// RecordError строка реестра, не прошедшая валидацию
// Ошибка в одной строке не прерывает обработку остальных
type RecordError struct {
	Index  int
	AptNum string
	Reason string
}

// DiffResponse результат сверки: классифицированные расхождения
type DiffResponse struct {
	ProjectName string
	New         []NewEntry
	Updated     []FieldUpdateEntry
	Renumbered  []NumberChangeEntry
	Unchanged   int
	Errors      []RecordError
}

// NumberChangeActions решение оператора по договорам со сменой номера
// Поля независимы: можно отменить записи, не снимая владельца, и наоборот
type NumberChangeActions struct {
	CancelBookings bool
	ClearOwner     bool
	Notify         bool
}

// ApplyRequest входные данные для применения реестра
type ApplyRequest struct {
	ProjectName string
	Records     []ImportRecord
	Actions     NumberChangeActions
}

// ApplyResponse итоги применения реестра
type ApplyResponse struct {
	Added             int
	Updated           int
	Renumbered        int
	Unchanged         int
	Skipped           int
	BookingsCancelled int64
	OwnersCleared     int

	// NotifyTgIDs владельцы договоров со сменой номера,
	// которых следует уведомить
	NotifyTgIDs []int64
}
