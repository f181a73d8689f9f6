package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	sq "github.com/Masterminds/squirrel"
	"github.com/dgarciab/retention-portal/internal/apperrors"
	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type StaffRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewStaffRepository(db *sqlx.DB, log *slog.Logger) *StaffRepository {
	return &StaffRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CursorForUpdate creates the cursor row with value 0 on first use, then
// reads it under FOR UPDATE so concurrent allocations serialize on it.
func (r *StaffRepository) CursorForUpdate(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	const op = "internal.repository.postgres.CursorForUpdate"

	insertQuery, insertArgs, err := r.sq.Insert("assignment_config").
		Columns("key", "value").
		Values(domain.CursorKey, 0).
		Suffix("ON CONFLICT (key) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return 0, fmt.Errorf("%s: failed to ensure cursor row: %w", op, err)
	}

	query, args, err := r.sq.Select("value").
		From("assignment_config").
		Where(sq.Eq{"key": domain.CursorKey}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var value int64
	if err := tx.GetContext(ctx, &value, query, args...); err != nil {
		return 0, fmt.Errorf("%s: failed to lock cursor row: %w", op, err)
	}

	return value, nil
}

func (r *StaffRepository) SetCursor(ctx context.Context, tx *sqlx.Tx, value int64) error {
	const op = "internal.repository.postgres.SetCursor"

	query, args, err := r.sq.Update("assignment_config").
		Set("value", value).
		Where(sq.Eq{"key": domain.CursorKey}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}

func (r *StaffRepository) FirstActiveExecutiveAfter(ctx context.Context, tx *sqlx.Tx, afterID int64) (*domain.Executive, error) {
	const op = "internal.repository.postgres.FirstActiveExecutiveAfter"

	query, args, err := r.sq.Select("id", "name", "email", "active").
		From("executives").
		Where(sq.And{sq.Eq{"active": true}, sq.Gt{"id": afterID}}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var exec domain.Executive
	if err := tx.GetContext(ctx, &exec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: no active executive with id > %d", op, apperrors.ErrNotFound, afterID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &exec, nil
}

func (r *StaffRepository) FirstActiveExecutive(ctx context.Context, tx *sqlx.Tx) (*domain.Executive, error) {
	const op = "internal.repository.postgres.FirstActiveExecutive"

	query, args, err := r.sq.Select("id", "name", "email", "active").
		From("executives").
		Where(sq.Eq{"active": true}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var exec domain.Executive
	if err := tx.GetContext(ctx, &exec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: no active executives", op, apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &exec, nil
}

func (r *StaffRepository) RandomActiveAnalyst(ctx context.Context) (*domain.Analyst, error) {
	const op = "internal.repository.postgres.RandomActiveAnalyst"

	analysts, err := r.ListActiveAnalysts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(analysts) == 0 {
		return nil, fmt.Errorf("%s: %w: no active analysts", op, apperrors.ErrNotFound)
	}

	analyst := analysts[rand.Intn(len(analysts))]

	return &analyst, nil
}

func (r *StaffRepository) ListActiveExecutives(ctx context.Context) ([]domain.Executive, error) {
	const op = "internal.repository.postgres.ListActiveExecutives"

	query, args, err := r.sq.Select("id", "name", "email", "active").
		From("executives").
		Where(sq.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var execs []domain.Executive
	if err := r.db.SelectContext(ctx, &execs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return execs, nil
}

func (r *StaffRepository) ListActiveAnalysts(ctx context.Context) ([]domain.Analyst, error) {
	const op = "internal.repository.postgres.ListActiveAnalysts"

	query, args, err := r.sq.Select("id", "name", "email", "active").
		From("analysts").
		Where(sq.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var analysts []domain.Analyst
	if err := r.db.SelectContext(ctx, &analysts, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return analysts, nil
}

func (r *StaffRepository) ExecutiveByIdentity(ctx context.Context, identityID int64) (*domain.Executive, error) {
	const op = "internal.repository.postgres.ExecutiveByIdentity"

	query, args, err := r.sq.Select("e.id", "e.name", "e.email", "e.active").
		From("executives e").
		Join("identity_links l ON l.staff_id = e.id AND l.kind = 'executive'").
		Where(sq.Eq{"l.identity_id": identityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var exec domain.Executive
	if err := r.db.GetContext(ctx, &exec, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: identity %d has no executive record", op, apperrors.ErrNotFound, identityID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &exec, nil
}

func (r *StaffRepository) BindExecutive(ctx context.Context, identityID int64, name, email string) (*domain.Executive, error) {
	const op = "internal.repository.postgres.BindExecutive"

	var exec domain.Executive

	err := r.bindStaff(ctx, op, identityID, domain.StaffExecutive, "executives", name, email, &exec)
	if err != nil {
		return nil, err
	}

	return &exec, nil
}

func (r *StaffRepository) BindAnalyst(ctx context.Context, identityID int64, name, email string) (*domain.Analyst, error) {
	const op = "internal.repository.postgres.BindAnalyst"

	var analyst domain.Analyst

	err := r.bindStaff(ctx, op, identityID, domain.StaffAnalyst, "analysts", name, email, &analyst)
	if err != nil {
		return nil, err
	}

	return &analyst, nil
}

// bindStaff inserts the staff row and its identity link in one transaction.
// dest must be a pointer to a struct scannable from (id, name, email, active).
func (r *StaffRepository) bindStaff(ctx context.Context, op string, identityID int64, kind domain.StaffKind, table, name, email string, dest interface{}) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	insertQuery, insertArgs, err := r.sq.Insert(table).
		Columns("name", "email").
		Values(name, email).
		Suffix("RETURNING id, name, email, active").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, insertQuery, insertArgs...).StructScan(dest); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("%s: %w: email '%s'", op, apperrors.ErrAlreadyExists, email)
		}

		return fmt.Errorf("%s: failed to insert staff row: %w", op, err)
	}

	var staffID int64
	switch s := dest.(type) {
	case *domain.Executive:
		staffID = s.ID
	case *domain.Analyst:
		staffID = s.ID
	}

	linkQuery, linkArgs, err := r.sq.Insert("identity_links").
		Columns("identity_id", "kind", "staff_id").
		Values(identityID, string(kind), staffID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build link query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, linkQuery, linkArgs...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &apperrors.IdentityAlreadyBoundError{IdentityID: identityID, Kind: string(kind)}
		}

		return fmt.Errorf("%s: failed to insert identity link: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

func (r *StaffRepository) UnbindExecutive(ctx context.Context, identityID int64) error {
	const op = "internal.repository.postgres.UnbindExecutive"
	return r.unbindStaff(ctx, op, identityID, domain.StaffExecutive, "executives")
}

func (r *StaffRepository) UnbindAnalyst(ctx context.Context, identityID int64) error {
	const op = "internal.repository.postgres.UnbindAnalyst"
	return r.unbindStaff(ctx, op, identityID, domain.StaffAnalyst, "analysts")
}

func (r *StaffRepository) unbindStaff(ctx context.Context, op string, identityID int64, kind domain.StaffKind, table string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.log.Error("failed to rollback transaction", sl.Err(err))
		}
	}()

	deleteLinkQuery, deleteLinkArgs, err := r.sq.Delete("identity_links").
		Where(sq.Eq{"identity_id": identityID, "kind": string(kind)}).
		Suffix("RETURNING staff_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete link query: %w", op, err)
	}

	var staffID int64
	if err := tx.GetContext(ctx, &staffID, deleteLinkQuery, deleteLinkArgs...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w: identity %d has no %s link", op, apperrors.ErrNotFound, identityID, kind)
		}

		return fmt.Errorf("%s: failed to delete identity link: %w", op, err)
	}

	deleteQuery, deleteArgs, err := r.sq.Delete(table).
		Where(sq.Eq{"id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return fmt.Errorf("%s: %w: %s %d is still referenced by requests", op, apperrors.ErrStaffInUse, kind, staffID)
		}

		return fmt.Errorf("%s: failed to delete staff row: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
