package contract

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	"github.com/dks-soft/DKS-HandoverService/pkg/dbmetrics"
	"github.com/dks-soft/DKS-HandoverService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с договорами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория договоров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает договор по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByNumber получает договор проекта по нормализованному номеру
func (r *Repository) GetByNumber(ctx context.Context, projectName, contractNum string) (*domain.Contract, error) {
	return r.getOne(ctx, squirrel.Eq{"project_name": projectName, "contract_num": contractNum}, "GetByNumber")
}

// GetByKey получает договор по ключу сверки (проект, номер квартиры)
func (r *Repository) GetByKey(ctx context.Context, projectName, aptNum string) (*domain.Contract, error) {
	return r.getOne(ctx, squirrel.Eq{"project_name": projectName, "apt_num": aptNum}, "GetByKey")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := contractColumns().
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	contract, err := scanContract(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan contract: %v", ErrScanRow, method, err)
	}

	return contract, nil
}

// Create создает новый договор
func (r *Repository) Create(ctx context.Context, contract *domain.Contract) (*domain.Contract, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contracts").
		Columns(
			"project_name",
			"apt_num",
			"entrance",
			"floor",
			"contract_num",
			"client_fio",
			"delivery_date",
			"owner_tg_id",
		).
		Values(
			contract.ProjectName,
			contract.AptNum,
			contract.Entrance,
			contract.Floor,
			contract.ContractNum,
			contract.ClientFIO,
			contract.DeliveryDate,
			contract.OwnerTgID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&contract.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	contract.CreatedAt = createdAt.Time
	contract.UpdatedAt = updatedAt.Time

	return contract, nil
}

// Update обновляет изменяемые поля договора, включая номер
// Владелец и история записей не затрагиваются
func (r *Repository) Update(ctx context.Context, contract *domain.Contract) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("entrance", contract.Entrance).
		Set("floor", contract.Floor).
		Set("contract_num", contract.ContractNum).
		Set("client_fio", contract.ClientFIO).
		Set("delivery_date", contract.DeliveryDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": contract.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrContractNotFound
	}

	return nil
}

// SetOwner закрепляет владельца за договором
// Срабатывает только если владелец еще не установлен — политика
// "первый записавшийся становится владельцем" не допускает перезаписи
func (r *Repository) SetOwner(ctx context.Context, contractID int64, tgID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("owner_tg_id", tgID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": contractID}).
		Where("owner_tg_id IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOwner - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOwner - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOwner - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOwnerAlreadySet
	}

	return nil
}

// ClearOwner снимает закрепление владельца с договора
// Используется сверкой при смене номера договора по решению оператора
func (r *Repository) ClearOwner(ctx context.Context, contractID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("contracts").
		Set("owner_tg_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": contractID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearOwner - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClearOwner - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClearOwner - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrContractNotFound
	}

	return nil
}

// ListProjectNames возвращает список проектов, по которым есть договоры
func (r *Repository) ListProjectNames(ctx context.Context) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT project_name").
		From("contracts").
		OrderBy("project_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListProjectNames - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProjectNames - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: ListProjectNames - scan row: %v", ErrScanRow, err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProjectNames - rows error: %v", ErrScanRow, err)
	}

	return names, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func contractColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"project_name",
		"apt_num",
		"entrance",
		"floor",
		"contract_num",
		"client_fio",
		"delivery_date",
		"owner_tg_id",
		"created_at",
		"updated_at",
	).From("contracts")
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var contract domain.Contract
	var ownerTgID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&contract.ID,
		&contract.ProjectName,
		&contract.AptNum,
		&contract.Entrance,
		&contract.Floor,
		&contract.ContractNum,
		&contract.ClientFIO,
		&contract.DeliveryDate,
		&ownerTgID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerTgID.Valid {
		contract.OwnerTgID = &ownerTgID.Int64
	}
	contract.CreatedAt = createdAt.Time
	contract.UpdatedAt = updatedAt.Time

	return &contract, nil
}
