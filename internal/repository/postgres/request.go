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
	"github.com/lib/pq"
)

type RequestRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewRequestRepository(db *sqlx.DB, log *slog.Logger) *RequestRepository {
	return &RequestRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RequestRepository) CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.Request) error {
	const op = "internal.repository.postgres.CreateRequest"

	query, args, err := r.sq.Insert("requests").
		Columns("client_id", "executive_id", "analyst_id", "status_id", "approval_level_id",
			"observations", "auto_assigned", "deactivation_date", "creator_identity_id").
		Values(req.ClientID, req.ExecutiveID, req.AnalystID, req.StatusID, req.ApprovalLevelID,
			req.Observations, req.AutoAssigned, req.DeactivationDate, req.CreatorIdentityID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: referenced row missing (%s)", op, apperrors.ErrNotFound, pqErr.Constraint)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *RequestRepository) LinkCircuits(ctx context.Context, tx *sqlx.Tx, requestID int64, circuitIDs []int64) error {
	const op = "internal.repository.postgres.LinkCircuits"

	insertBuilder := r.sq.Insert("request_circuits").
		Columns("request_id", "circuit_id")

	for _, circuitID := range circuitIDs {
		insertBuilder = insertBuilder.Values(requestID, circuitID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23503" {
				return fmt.Errorf("%s: %w: circuit does not exist", op, apperrors.ErrNotFound)
			}

			if pqErr.Code == "23505" {
				return fmt.Errorf("%s: %w: circuit already linked to request %d", op, apperrors.ErrAlreadyExists, requestID)
			}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *RequestRepository) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Request, error) {
	const op = "internal.repository.postgres.GetRequestByIDWithLock"

	query, args, err := r.sq.Select("id", "client_id", "executive_id", "analyst_id", "status_id",
		"approval_level_id", "created_at", "observations", "auto_assigned",
		"deactivation_date", "creator_identity_id").
		From("requests").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var req domain.Request
	if err := tx.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: request with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to get request with lock: %w", op, err)
	}

	return &req, nil
}

func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID, statusID int64) error {
	const op = "internal.repository.postgres.UpdateRequestStatus"

	query, args, err := r.sq.Update("requests").
		Set("status_id", statusID).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	if rowsAffected, err := res.RowsAffected(); err == nil && rowsAffected == 0 {
		return fmt.Errorf("%s: %w: request with id %d", op, apperrors.ErrNotFound, requestID)
	}

	return nil
}

func (r *RequestRepository) AppendStatusHistory(ctx context.Context, tx *sqlx.Tx, entry *domain.StatusHistoryEntry) error {
	const op = "internal.repository.postgres.AppendStatusHistory"

	query, args, err := r.sq.Insert("status_history").
		Columns("request_id", "previous_status_id", "new_status_id", "author").
		Values(entry.RequestID, entry.PreviousStatusID, entry.NewStatusID, entry.Author).
		Suffix("RETURNING id, changed_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&entry.ID, &entry.ChangedAt); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *RequestRepository) AddComment(ctx context.Context, requestID int64, author, body string) (*domain.Comment, error) {
	const op = "internal.repository.postgres.AddComment"

	query, args, err := r.sq.Insert("comments").
		Columns("request_id", "author", "body").
		Values(requestID, author, body).
		Suffix("RETURNING id, request_id, author, body, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	var comment domain.Comment
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&comment); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, fmt.Errorf("%s: %w: request with id %d", op, apperrors.ErrNotFound, requestID)
		}

		return nil, fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return &comment, nil
}

const requestDetailColumns = `r.id, r.client_id, r.executive_id, r.analyst_id, r.status_id,
	r.approval_level_id, r.created_at, r.observations, r.auto_assigned,
	r.deactivation_date, r.creator_identity_id,
	c.name AS client_name, e.name AS executive_name, a.name AS analyst_name,
	s.name AS status_name, l.name AS level_name`

func (r *RequestRepository) GetRequestDetail(ctx context.Context, id int64) (*domain.RequestDetail, error) {
	const op = "internal.repository.postgres.GetRequestDetail"

	query, args, err := r.sq.Select(requestDetailColumns).
		From("requests r").
		Join("clients c ON c.id = r.client_id").
		Join("executives e ON e.id = r.executive_id").
		Join("analysts a ON a.id = r.analyst_id").
		Join("request_statuses s ON s.id = r.status_id").
		Join("approval_levels l ON l.id = r.approval_level_id").
		Where(sq.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var detail domain.RequestDetail
	if err := r.db.GetContext(ctx, &detail, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: request with id %d", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &detail, nil
}

func (r *RequestRepository) summaryBuilder() sq.SelectBuilder {
	return r.sq.Select(
		"r.id",
		"c.name AS client_name",
		"e.name AS executive_name",
		"a.name AS analyst_name",
		"s.name AS status_name",
		"r.created_at",
		"r.deactivation_date",
	).From("requests r").
		Join("clients c ON c.id = r.client_id").
		Join("executives e ON e.id = r.executive_id").
		Join("analysts a ON a.id = r.analyst_id").
		Join("request_statuses s ON s.id = r.status_id").
		OrderBy("r.created_at DESC")
}

func (r *RequestRepository) ListAll(ctx context.Context) ([]domain.RequestSummary, error) {
	const op = "internal.repository.postgres.ListAll"
	return r.listSummaries(ctx, op, r.summaryBuilder())
}

func (r *RequestRepository) ListByCreator(ctx context.Context, identityID int64) ([]domain.RequestSummary, error) {
	const op = "internal.repository.postgres.ListByCreator"
	return r.listSummaries(ctx, op, r.summaryBuilder().Where(sq.Eq{"r.creator_identity_id": identityID}))
}

func (r *RequestRepository) ListByExecutive(ctx context.Context, executiveID int64) ([]domain.RequestSummary, error) {
	const op = "internal.repository.postgres.ListByExecutive"
	return r.listSummaries(ctx, op, r.summaryBuilder().Where(sq.Eq{"r.executive_id": executiveID}))
}

func (r *RequestRepository) listSummaries(ctx context.Context, op string, builder sq.SelectBuilder) ([]domain.RequestSummary, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var summaries []domain.RequestSummary
	if err := r.db.SelectContext(ctx, &summaries, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return summaries, nil
}

func (r *RequestRepository) GetCircuits(ctx context.Context, requestID int64) ([]domain.Circuit, error) {
	const op = "internal.repository.postgres.GetCircuits"

	query, args, err := r.sq.Select("c.id", "c.client_id", "c.name", "c.service_type", "c.status", "c.monthly_rent", "c.created_at").
		From("circuits c").
		Join("request_circuits rc ON rc.circuit_id = c.id").
		Where(sq.Eq{"rc.request_id": requestID}).
		OrderBy("c.id").
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

func (r *RequestRepository) GetComments(ctx context.Context, requestID int64) ([]domain.Comment, error) {
	const op = "internal.repository.postgres.GetComments"

	query, args, err := r.sq.Select("id", "request_id", "author", "body", "created_at").
		From("comments").
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var comments []domain.Comment
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return comments, nil
}

func (r *RequestRepository) GetStatusHistory(ctx context.Context, requestID int64) ([]domain.StatusHistoryView, error) {
	const op = "internal.repository.postgres.GetStatusHistory"

	query, args, err := r.sq.Select(
		"h.id",
		"prev.name AS previous_status",
		"next.name AS new_status",
		"h.changed_at",
		"h.author",
	).From("status_history h").
		Join("request_statuses prev ON prev.id = h.previous_status_id").
		Join("request_statuses next ON next.id = h.new_status_id").
		Where(sq.Eq{"h.request_id": requestID}).
		OrderBy("h.changed_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var history []domain.StatusHistoryView
	if err := r.db.SelectContext(ctx, &history, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return history, nil
}
