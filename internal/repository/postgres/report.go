package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ReportRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReportRepository(db *sqlx.DB, log *slog.Logger) *ReportRepository {
	return &ReportRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ReportRepository) CountClients(ctx context.Context) (int, error) {
	const op = "internal.repository.postgres.CountClients"
	return r.count(ctx, op, r.sq.Select("COUNT(*)").From("clients"))
}

func (r *ReportRepository) CountRequests(ctx context.Context) (int, error) {
	const op = "internal.repository.postgres.CountRequests"
	return r.count(ctx, op, r.sq.Select("COUNT(*)").From("requests"))
}

func (r *ReportRepository) CountPendingRequests(ctx context.Context) (int, error) {
	const op = "internal.repository.postgres.CountPendingRequests"

	builder := r.sq.Select("COUNT(*)").
		From("requests r").
		Join("request_statuses s ON s.id = r.status_id").
		Where(sq.Eq{"s.name": []string{domain.StatusRegistered, domain.StatusInAnalysis}})

	return r.count(ctx, op, builder)
}

func (r *ReportRepository) count(ctx context.Context, op string, builder sq.SelectBuilder) (int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return n, nil
}
