package models

import (
	"time"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	bookingRepo "github.com/dks-soft/DKS-HandoverService/internal/infra/storage/booking"
)

// ResolveContractRequest запрос на поиск договора по номеру
type ResolveContractRequest struct {
	ProjectName string
	ContractNum string
	UserTgID    int64
}

// UpcomingBooking действующая предстоящая запись по договору
type UpcomingBooking struct {
	BookingID int64
	Date      time.Time
	TimeSlot  domain.TimeSlot
}

// ContractResponse данные договора для записавшегося пользователя
type ContractResponse struct {
	ContractID   int64
	ProjectName  string
	AptNum       string
	Entrance     string
	Floor        int
	ContractNum  string
	ClientFIO    string
	DeliveryDate time.Time
	IsOwner      bool
	Upcoming     *UpcomingBooking
}

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	BookingID int64
	UserTgID  int64
}

// ListProjectBookingsRequest запрос списка записей проекта для сотрудников
type ListProjectBookingsRequest struct {
	ProjectName string
	From        time.Time
	To          time.Time
}

// ProjectBookingItem одна строка списка записей проекта
type ProjectBookingItem struct {
	BookingID   int64
	Date        time.Time
	TimeSlot    domain.TimeSlot
	ContractNum string
	ClientFIO   string
	ClientPhone string
	AptNum      string
	Entrance    string
	Floor       int

	// RepeatVisit true, если по договору уже был более ранний визит —
	// сотрудник видит, что клиент приходит не в первый раз
	RepeatVisit bool
}

// ProjectBookingsResponse список записей проекта за период
type ProjectBookingsResponse struct {
	ProjectName string
	Items       []ProjectBookingItem
}

// FromDomainContract конвертирует договор в ответ сервиса
func FromDomainContract(contract *domain.Contract, userTgID int64, upcoming *domain.Booking) *ContractResponse {
	resp := &ContractResponse{
		ContractID:   contract.ID,
		ProjectName:  contract.ProjectName,
		AptNum:       contract.AptNum,
		Entrance:     contract.Entrance,
		Floor:        contract.Floor,
		ContractNum:  contract.ContractNum,
		ClientFIO:    contract.ClientFIO,
		DeliveryDate: contract.DeliveryDate,
		IsOwner:      contract.IsOwnedBy(userTgID),
	}

	if upcoming != nil {
		resp.Upcoming = &UpcomingBooking{
			BookingID: upcoming.ID,
			Date:      upcoming.Date,
			TimeSlot:  upcoming.TimeSlot,
		}
	}

	return resp
}

// FromBookingWithContract конвертирует строку выборки в элемент списка
func FromBookingWithContract(item *bookingRepo.BookingWithContract, repeatVisit bool) ProjectBookingItem {
	return ProjectBookingItem{
		BookingID:   item.Booking.ID,
		Date:        item.Booking.Date,
		TimeSlot:    item.Booking.TimeSlot,
		ContractNum: item.ContractNum,
		ClientFIO:   item.ClientFIO,
		ClientPhone: item.Booking.ClientPhone,
		AptNum:      item.AptNum,
		Entrance:    item.Entrance,
		Floor:       item.Floor,
		RepeatVisit: repeatVisit,
	}
}
