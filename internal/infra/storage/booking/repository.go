package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	"github.com/dks-soft/DKS-HandoverService/pkg/dbmetrics"
	"github.com/dks-soft/DKS-HandoverService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями на передачу ключей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Если в контексте передана активная транзакция (через context.Value), использует её —
// создание записи с проверкой вместимости слота обязано выполняться в транзакции,
// иначе возможна гонка двух параллельных записей на последнее место.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"contract_id",
			"date",
			"time_slot",
			"creator_tg_id",
			"client_phone",
			"is_cancelled",
		).
		Values(
			booking.ContractID,
			booking.Date,
			booking.TimeSlot,
			booking.CreatorTgID,
			booking.ClientPhone,
			booking.IsCancelled,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookingColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindUpcoming находит активную запись договора с датой сегодня или позже
// Возвращает ErrBookingNotFound, если такой записи нет
func (r *Repository) FindUpcoming(ctx context.Context, contractID int64, today time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookingColumns().
		Where(squirrel.Eq{"contract_id": contractID, "is_cancelled": false}).
		Where(squirrel.GtOrEq{"date": domain.DateOnly(today)}).
		OrderBy("date ASC, time_slot ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindUpcoming - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindMostRecentActive находит последнюю неотменённую запись договора независимо от даты
/// Отменённые записи не учитываются: отменённый визит не должен задерживать следующую запись
func (r *Repository) FindMostRecentActive(ctx context.Context, contractID int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := bookingColumns().
		Where(squirrel.Eq{"contract_id": contractID, "is_cancelled": false}).
		OrderBy("date DESC, time_slot DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindMostRecentActive - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindMostRecentActive - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// CountActiveBySlot считает активные записи проекта на конкретные дату и слот
func (r *Repository) CountActiveBySlot(ctx context.Context, projectName string, date time.Time, slot domain.TimeSlot) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(b.id)").
		From("bookings b").
		Join("contracts c ON c.id = b.contract_id").
		Where(squirrel.Eq{
			"c.project_name": projectName,
			"b.date":         domain.DateOnly(date),
			"b.time_slot":    slot,
			"b.is_cancelled": false,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveBySlotsForDate возвращает занятость каждого слота проекта на дату
// Слоты без записей в результат не попадают
func (r *Repository) CountActiveBySlotsForDate(ctx context.Context, projectName string, date time.Time) (map[domain.TimeSlot]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.time_slot", "COUNT(b.id)").
		From("bookings b").
		Join("contracts c ON c.id = b.contract_id").
		Where(squirrel.Eq{
			"c.project_name": projectName,
			"b.date":         domain.DateOnly(date),
			"b.is_cancelled": false,
		}).
		GroupBy("b.time_slot").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlotsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlotsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.TimeSlot]int)
	for rows.Next() {
		var slot domain.TimeSlot
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveBySlotsForDate - scan row: %v", ErrScanRow, err)
		}
		counts[slot] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveBySlotsForDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountActiveByDateRange возвращает количество активных записей проекта
// по датам в диапазоне [from, to]. Даты без записей в результат не попадают
func (r *Repository) CountActiveByDateRange(ctx context.Context, projectName string, from, to time.Time) (map[time.Time]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.date", "COUNT(b.id)").
		From("bookings b").
		Join("contracts c ON c.id = b.contract_id").
		Where(squirrel.Eq{
			"c.project_name": projectName,
			"b.is_cancelled": false,
		}).
		Where(squirrel.GtOrEq{"b.date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"b.date": domain.DateOnly(to)}).
		GroupBy("b.date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[time.Time]int)
	for rows.Next() {
		var date time.Time
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDateRange - scan row: %v", ErrScanRow, err)
		}
		counts[domain.DateOnly(date)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountActiveByContract считает все активные записи договора
// Используется отчетом сверки для классификации NumberChange
func (r *Repository) CountActiveByContract(ctx context.Context, contractID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(id)").
		From("bookings").
		Where(squirrel.Eq{"contract_id": contractID, "is_cancelled": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByContract - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByContract - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// MarkCancelled помечает запись отменённой
// Физическое удаление не используется — история визитов сохраняется
func (r *Repository) MarkCancelled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_cancelled", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCancelled - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkCancelledByContract отменяет все активные записи договора
// Возвращает количество отменённых записей. Используется сверкой при смене
// номера договора — административная отмена не проверяет дедлайн отмены
func (r *Repository) MarkCancelledByContract(ctx context.Context, contractID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("is_cancelled", true).
		Where(squirrel.Eq{"contract_id": contractID, "is_cancelled": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkCancelledByContract - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkCancelledByContract - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkCancelledByContract - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ListByProjectAndRange возвращает активные записи проекта за период вместе с данными
// договора, в порядке обхода сотрудником: дата, подъезд, этаж, время
func (r *Repository) ListByProjectAndRange(ctx context.Context, projectName string, from, to time.Time) ([]*BookingWithContract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.contract_id",
		"b.date",
		"b.time_slot",
		"b.creator_tg_id",
		"b.client_phone",
		"b.is_cancelled",
		"b.reminder_day_sent",
		"b.reminder_hour_sent",
		"b.created_at",
		"c.contract_num",
		"c.client_fio",
		"c.apt_num",
		"c.entrance",
		"c.floor",
	).
		From("bookings b").
		Join("contracts c ON c.id = b.contract_id").
		Where(squirrel.Eq{
			"c.project_name": projectName,
			"b.is_cancelled": false,
		}).
		Where(squirrel.GtOrEq{"b.date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"b.date": domain.DateOnly(to)}).
		OrderBy("b.date ASC", "c.entrance ASC", "c.floor ASC", "b.time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProjectAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProjectAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*BookingWithContract, 0)
	for rows.Next() {
		var item BookingWithContract
		var createdAt sql.NullTime

		err := rows.Scan(
			&item.Booking.ID,
			&item.Booking.ContractID,
			&item.Booking.Date,
			&item.Booking.TimeSlot,
			&item.Booking.CreatorTgID,
			&item.Booking.ClientPhone,
			&item.Booking.IsCancelled,
			&item.Booking.ReminderDaySent,
			&item.Booking.ReminderHourSent,
			&createdAt,
			&item.ContractNum,
			&item.ClientFIO,
			&item.AptNum,
			&item.Entrance,
			&item.Floor,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProjectAndRange - scan row: %v", ErrScanRow, err)
		}

		item.Booking.CreatedAt = createdAt.Time
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProjectAndRange - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// FindFirstActiveIDs возвращает ID самой ранней активной записи для каждого договора
// Используется в списках сотрудников для пометки повторных визитов
func (r *Repository) FindFirstActiveIDs(ctx context.Context, contractIDs []int64) (map[int64]int64, error) {
	if len(contractIDs) == 0 {
		return map[int64]int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("contract_id", "MIN(id)").
		From("bookings").
		Where(squirrel.Eq{"contract_id": contractIDs, "is_cancelled": false}).
		GroupBy("contract_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindFirstActiveIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindFirstActiveIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	firstIDs := make(map[int64]int64)
	for rows.Next() {
		var contractID, bookingID int64
		if err := rows.Scan(&contractID, &bookingID); err != nil {
			return nil, fmt.Errorf("%w: FindFirstActiveIDs - scan row: %v", ErrScanRow, err)
		}
		firstIDs[contractID] = bookingID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindFirstActiveIDs - rows error: %v", ErrScanRow, err)
	}

	return firstIDs, nil
}

// BookingWithContract запись вместе с данными договора для списков сотрудников
type BookingWithContract struct {
	Booking     domain.Booking
	ContractNum string
	ClientFIO   string
	AptNum      string
	Entrance    string
	Floor       int
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// bookingColumns общий SELECT по колонкам записи
func bookingColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"contract_id",
		"date",
		"time_slot",
		"creator_tg_id",
		"client_phone",
		"is_cancelled",
		"reminder_day_sent",
		"reminder_hour_sent",
		"created_at",
	).From("bookings")
}

// scanBooking сканирует одну строку в модель записи
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ContractID,
		&booking.Date,
		&booking.TimeSlot,
		&booking.CreatorTgID,
		&booking.ClientPhone,
		&booking.IsCancelled,
		&booking.ReminderDaySent,
		&booking.ReminderHourSent,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time

	return &booking, nil
}
