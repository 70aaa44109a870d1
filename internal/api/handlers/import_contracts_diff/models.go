package import_contracts_diff

import (
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	reconcileContracts "github.com/dks-soft/DKS-HandoverService/internal/usecase/reconcile_contracts"
)

// ImportRecordRequest одна строка импортируемого реестра
type ImportRecordRequest struct {
	AptNum       string `json:"aptNum"`
	Entrance     string `json:"entrance,omitempty"`
	Floor        int    `json:"floor,omitempty"`
	ContractNum  string `json:"contractNum"`
	ClientFIO    string `json:"clientFio"`
	DeliveryDate string `json:"deliveryDate"` // "2026-01-01"
}

// DiffRequest HTTP request model
type DiffRequest struct {
	ProjectName string                `json:"projectName"`
	Records     []ImportRecordRequest `json:"records"`
}

// FieldChangeResponse изменение одного поля договора
type FieldChangeResponse struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// NewEntryResponse договор, отсутствующий в базе
type NewEntryResponse struct {
	AptNum      string `json:"aptNum"`
	ContractNum string `json:"contractNum"`
	ClientFIO   string `json:"clientFio"`
}

// UpdatedEntryResponse договор с изменившимися полями
type UpdatedEntryResponse struct {
	ContractID int64                 `json:"contractId"`
	AptNum     string                `json:"aptNum"`
	Changes    []FieldChangeResponse `json:"changes"`
}

// RenumberedEntryResponse договор со сменившимся номером
type RenumberedEntryResponse struct {
	ContractID     int64                 `json:"contractId"`
	AptNum         string                `json:"aptNum"`
	OldNum         string                `json:"oldNum"`
	NewNum         string                `json:"newNum"`
	ActiveBookings int                   `json:"activeBookings"`
	HasOwner       bool                  `json:"hasOwner"`
	Changes        []FieldChangeResponse `json:"changes,omitempty"`
}

// RecordErrorResponse строка реестра, не прошедшая валидацию
type RecordErrorResponse struct {
	Index  int    `json:"index"`
	AptNum string `json:"aptNum,omitempty"`
	Reason string `json:"reason"`
}

// DiffResponse HTTP response model
type DiffResponse struct {
	ProjectName string                    `json:"projectName"`
	New         []NewEntryResponse        `json:"new"`
	Updated     []UpdatedEntryResponse    `json:"updated"`
	Renumbered  []RenumberedEntryResponse `json:"renumbered"`
	Unchanged   int                       `json:"unchanged"`
	Errors      []RecordErrorResponse     `json:"errors"`
}

// ToUseCaseRecords конвертирует строки реестра в модель use case
// Некорректная дата оставляет нулевое значение — такие строки
// отсеет валидация use case, не прерывая остальные
func ToUseCaseRecords(records []ImportRecordRequest) []reconcileContracts.ImportRecord {
	out := make([]reconcileContracts.ImportRecord, 0, len(records))
	for _, r := range records {
		deliveryDate, _ := time.Parse(domain.DateFormat, r.DeliveryDate)
		out = append(out, reconcileContracts.ImportRecord{
			AptNum:       r.AptNum,
			Entrance:     r.Entrance,
			Floor:        r.Floor,
			ContractNum:  r.ContractNum,
			ClientFIO:    r.ClientFIO,
			DeliveryDate: deliveryDate,
		})
	}
	return out
}

func fromFieldChanges(changes []reconcileContracts.FieldChange) []FieldChangeResponse {
	out := make([]FieldChangeResponse, 0, len(changes))
	for _, c := range changes {
		out = append(out, FieldChangeResponse{Field: c.Field, Old: c.Old, New: c.New})
	}
	return out
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileContracts.DiffResponse) *DiffResponse {
	out := &DiffResponse{
		ProjectName: resp.ProjectName,
		New:         make([]NewEntryResponse, 0, len(resp.New)),
		Updated:     make([]UpdatedEntryResponse, 0, len(resp.Updated)),
		Renumbered:  make([]RenumberedEntryResponse, 0, len(resp.Renumbered)),
		Unchanged:   resp.Unchanged,
		Errors:      make([]RecordErrorResponse, 0, len(resp.Errors)),
	}

	for _, e := range resp.New {
		out.New = append(out.New, NewEntryResponse{
			AptNum:      e.Record.AptNum,
			ContractNum: e.Record.ContractNum,
			ClientFIO:   e.Record.ClientFIO,
		})
	}
	for _, e := range resp.Updated {
		out.Updated = append(out.Updated, UpdatedEntryResponse{
			ContractID: e.ContractID,
			AptNum:     e.AptNum,
			Changes:    fromFieldChanges(e.Changes),
		})
	}
	for _, e := range resp.Renumbered {
		out.Renumbered = append(out.Renumbered, RenumberedEntryResponse{
			ContractID:     e.ContractID,
			AptNum:         e.AptNum,
			OldNum:         e.OldNum,
			NewNum:         e.NewNum,
			ActiveBookings: e.ActiveBookings,
			HasOwner:       e.OwnerTgID != nil,
			Changes:        fromFieldChanges(e.Changes),
		})
	}
	for _, e := range resp.Errors {
		out.Errors = append(out.Errors, RecordErrorResponse{Index: e.Index, AptNum: e.AptNum, Reason: e.Reason})
	}

	return out
}
