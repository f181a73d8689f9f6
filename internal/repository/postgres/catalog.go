package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/dgarciab/retention-portal/internal/apperrors"
	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/jmoiron/sqlx"
)

type CatalogRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewCatalogRepository(db *sqlx.DB, log *slog.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CatalogRepository) GetStatusByName(ctx context.Context, name string) (*domain.RequestStatus, error) {
	const op = "internal.repository.postgres.GetStatusByName"

	query, args, err := r.sq.Select("id", "name", "COALESCE(description, '') AS description").
		From("request_statuses").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var status domain.RequestStatus
	if err := r.db.GetContext(ctx, &status, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: status '%s'", op, apperrors.ErrNotFound, name)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &status, nil
}

func (r *CatalogRepository) GetStatusByID(ctx context.Context, id int64) (*domain.RequestStatus, error) {
	const op = "internal.repository.postgres.GetStatusByID"

	query, args, err := r.sq.Select("id", "name", "COALESCE(description, '') AS description").
		From("request_statuses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var status domain.RequestStatus
	if err := r.db.GetContext(ctx, &status, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: status with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &status, nil
}

func (r *CatalogRepository) GetLevelByPosition(ctx context.Context, position int) (*domain.ApprovalLevel, error) {
	const op = "internal.repository.postgres.GetLevelByPosition"

	query, args, err := r.sq.Select("id", "name", "position").
		From("approval_levels").
		Where(sq.Eq{"position": position}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var level domain.ApprovalLevel
	if err := r.db.GetContext(ctx, &level, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: approval level with position %d", op, apperrors.ErrNotFound, position)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &level, nil
}

func (r *CatalogRepository) ListStatuses(ctx context.Context) ([]domain.RequestStatus, error) {
	const op = "internal.repository.postgres.ListStatuses"

	query, args, err := r.sq.Select("id", "name", "COALESCE(description, '') AS description").
		From("request_statuses").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var statuses []domain.RequestStatus
	if err := r.db.SelectContext(ctx, &statuses, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return statuses, nil
}
