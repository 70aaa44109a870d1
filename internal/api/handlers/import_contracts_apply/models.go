package import_contracts_apply

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

// NumberChangeActionsRequest решение оператора по договорам со сменой номера
type NumberChangeActionsRequest struct {
	CancelBookings bool `json:"cancelBookings"`
	ClearOwner     bool `json:"clearOwner"`
	Notify         bool `json:"notify"`
}

// ApplyRequest HTTP request model
type ApplyRequest struct {
	ProjectName string                     `json:"projectName"`
	Records     []ImportRecordRequest      `json:"records"`
	Actions     NumberChangeActionsRequest `json:"actions"`
}

// ApplyResponse HTTP response model
type ApplyResponse struct {
	Added             int     `json:"added"`
	Updated           int     `json:"updated"`
	Renumbered        int     `json:"renumbered"`
	Unchanged         int     `json:"unchanged"`
	Skipped           int     `json:"skipped"`
	BookingsCancelled int64   `json:"bookingsCancelled"`
	OwnersCleared     int     `json:"ownersCleared"`
	NotifyTgIDs       []int64 `json:"notifyTgIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyRequest) ToUseCaseRequest() reconcileContracts.ApplyRequest {
	records := make([]reconcileContracts.ImportRecord, 0, len(r.Records))
	for _, rec := range r.Records {
		deliveryDate, _ := time.Parse(domain.DateFormat, rec.DeliveryDate)
		records = append(records, reconcileContracts.ImportRecord{
			AptNum:       rec.AptNum,
			Entrance:     rec.Entrance,
			Floor:        rec.Floor,
			ContractNum:  rec.ContractNum,
			ClientFIO:    rec.ClientFIO,
			DeliveryDate: deliveryDate,
		})
	}

	return reconcileContracts.ApplyRequest{
		ProjectName: r.ProjectName,
		Records:     records,
		Actions: reconcileContracts.NumberChangeActions{
			CancelBookings: r.Actions.CancelBookings,
			ClearOwner:     r.Actions.ClearOwner,
			Notify:         r.Actions.Notify,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileContracts.ApplyResponse) *ApplyResponse {
	return &ApplyResponse{
		Added:             resp.Added,
		Updated:           resp.Updated,
		Renumbered:        resp.Renumbered,
		Unchanged:         resp.Unchanged,
		Skipped:           resp.Skipped,
		BookingsCancelled: resp.BookingsCancelled,
		OwnersCleared:     resp.OwnersCleared,
		NotifyTgIDs:       resp.NotifyTgIDs,
	}
}
