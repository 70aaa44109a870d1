package reconcile_contracts

import (
	"fmt"
	"strings"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
)

// normalizeRecord приводит строку реестра к каноническому виду
func normalizeRecord(rec ImportRecord) ImportRecord {
	rec.AptNum = strings.TrimSpace(rec.AptNum)
	rec.Entrance = strings.TrimSpace(rec.Entrance)
	rec.ContractNum = domain.NormalizeContractNum(rec.ContractNum)
	rec.ClientFIO = strings.TrimSpace(rec.ClientFIO)
	if !rec.DeliveryDate.IsZero() {
		rec.DeliveryDate = domain.DateOnly(rec.DeliveryDate)
	}
	return rec
}

// validateRecord проверяет обязательные поля строки реестра
func validateRecord(rec ImportRecord) error {
	if rec.AptNum == "" {
		return fmt.Errorf("apartment number is required")
	}
	if rec.ContractNum == "" {
		return fmt.Errorf("contract number is required")
	}
	if rec.ClientFIO == "" {
		return fmt.Errorf("client name is required")
	}
	if rec.DeliveryDate.IsZero() {
		return fmt.Errorf("delivery date is required")
	}
	if rec.Floor < 0 {
		return fmt.Errorf("floor must not be negative")
	}
	return nil
}

// diffFields сравнивает изменяемые поля договора со строкой реестра
// Номер договора сравнивается отдельно
func diffFields(existing *domain.Contract, rec ImportRecord) []FieldChange {
	changes := make([]FieldChange, 0)

	if existing.Entrance != rec.Entrance {
		changes = append(changes, FieldChange{Field: "entrance", Old: existing.Entrance, New: rec.Entrance})
	}
	if existing.Floor != rec.Floor {
		changes = append(changes, FieldChange{
			Field: "floor",
			Old:   fmt.Sprintf("%d", existing.Floor),
			New:   fmt.Sprintf("%d", rec.Floor),
		})
	}
	if existing.ClientFIO != rec.ClientFIO {
		changes = append(changes, FieldChange{Field: "client_fio", Old: existing.ClientFIO, New: rec.ClientFIO})
	}
	if !domain.DateOnly(existing.DeliveryDate).Equal(rec.DeliveryDate) {
		changes = append(changes, FieldChange{
			Field: "delivery_date",
			Old:   domain.DateOnly(existing.DeliveryDate).Format(domain.DateFormat),
			New:   rec.DeliveryDate.Format(domain.DateFormat),
		})
	}

	return changes
}
