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

type ClientRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewClientRepository(db *sqlx.DB, log *slog.Logger) *ClientRepository {
	return &ClientRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ClientRepository) GetClientByID(ctx context.Context, id int64) (*domain.Client, error) {
	const op = "internal.repository.postgres.GetClientByID"

	query, args, err := r.sq.Select("id", "tax_id", "name", "status", "registered_at").
		From("clients").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var client domain.Client
	if err := r.db.GetContext(ctx, &client, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: client with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &client, nil
}

func (r *ClientRepository) SearchClients(ctx context.Context, queryStr string, limit uint64) ([]domain.Client, error) {
	const op = "internal.repository.postgres.SearchClients"

	query, args, err := r.sq.Select("id", "tax_id", "name", "status", "registered_at").
		From("clients").
		Where(sq.ILike{"name": "%" + queryStr + "%"}).
		OrderBy("name").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var clients []domain.Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return clients, nil
}

func (r *ClientRepository) GetCircuitsByClient(ctx context.Context, clientID int64) ([]domain.Circuit, error) {
	const op = "internal.repository.postgres.GetCircuitsByClient"

	query, args, err := r.sq.Select("id", "client_id", "name", "service_type", "status", "monthly_rent", "created_at").
		From("circuits").
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var circuits []domain.Circuit
	if err := r.db.SelectContext(ctx, &circuits, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return circuits, nil
}
