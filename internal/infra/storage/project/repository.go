package project

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dks-soft/DKS-HandoverService/internal/domain"
	"github.com/dks-soft/DKS-HandoverService/pkg/dbmetrics"
	"github.com/dks-soft/DKS-HandoverService/pkg/psqlbuilder"
)

// Repository репозиторий настроек проектов (лимит слотов, адрес, геолокация)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория проектов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByName получает настройки проекта по названию
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Project, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"project_name",
		"slots_limit",
		"address_ru",
		"address_uz",
		"latitude",
		"longitude",
		"created_at",
		"updated_at",
	).
		From("project_slots").
		Where(squirrel.Eq{"project_name": name}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - build select query: %v", ErrBuildQuery, err)
	}

	var project domain.Project
	var addressRu, addressUz sql.NullString
	var latitude, longitude sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&project.Name,
		&project.SlotsLimit,
		&addressRu,
		&addressUz,
		&latitude,
		&longitude,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByName - scan project: %v", ErrScanRow, err)
	}

	if addressRu.Valid {
		project.AddressRu = &addressRu.String
	}
	if addressUz.Valid {
		project.AddressUz = &addressUz.String
	}
	if latitude.Valid {
		project.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		project.Longitude = &longitude.Float64
	}
	project.CreatedAt = createdAt.Time
	project.UpdatedAt = updatedAt.Time

	return &project, nil
}

// Upsert создает или обновляет настройки проекта
func (r *Repository) Upsert(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("project_slots").
		Columns(
			"project_name",
			"slots_limit",
			"address_ru",
			"address_uz",
			"latitude",
			"longitude",
		).
		Values(
			project.Name,
			project.EffectiveSlotsLimit(),
			project.AddressRu,
			project.AddressUz,
			project.Latitude,
			project.Longitude,
		).
		Suffix(`ON CONFLICT (project_name) DO UPDATE SET
			slots_limit = EXCLUDED.slots_limit,
			address_ru = COALESCE(EXCLUDED.address_ru, project_slots.address_ru),
			address_uz = COALESCE(EXCLUDED.address_uz, project_slots.address_uz),
			latitude = COALESCE(EXCLUDED.latitude, project_slots.latitude),
			longitude = COALESCE(EXCLUDED.longitude, project_slots.longitude),
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	project.SlotsLimit = project.EffectiveSlotsLimit()
	project.CreatedAt = createdAt.Time
	project.UpdatedAt = updatedAt.Time

	return project, nil
}
