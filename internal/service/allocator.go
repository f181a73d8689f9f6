package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgarciab/retention-portal/internal/apperrors"
	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/repository"
	"github.com/jmoiron/sqlx"
)

// AllocatorService selects the staff a new request is routed to: the next
// executive in a persisted round-robin rotation and a uniformly random
// active analyst.
type AllocatorService interface {
	// AllocateExecutive picks the next executive in rotation and advances
	// the persisted cursor. It must run inside the transaction that creates
	// the request so the cursor mutation commits or rolls back with it.
	AllocateExecutive(ctx context.Context, tx *sqlx.Tx) (*domain.Executive, error)

	// AllocateAnalyst picks an active analyst uniformly at random. No
	// persisted state; not reproducible across calls.
	AllocateAnalyst(ctx context.Context) (*domain.Analyst, error)
}

type AllocatorServiceImpl struct {
	log   *slog.Logger
	staff repository.StaffRepository
}

func NewAllocatorService(log *slog.Logger, staff repository.StaffRepository) *AllocatorServiceImpl {
	return &AllocatorServiceImpl{
		log:   log,
		staff: staff,
	}
}

func (s *AllocatorServiceImpl) AllocateExecutive(ctx context.Context, tx *sqlx.Tx) (*domain.Executive, error) {
	const op = "internal.service.allocator.AllocateExecutive"

	cursor, err := s.staff.CursorForUpdate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to lock assignment cursor: %w", op, err)
	}

	exec, err := s.staff.FirstActiveExecutiveAfter(ctx, tx, cursor)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Cursor is at or past the highest active id: wrap around.
		exec, err = s.staff.FirstActiveExecutive(ctx, tx)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NoActiveStaffError{Kind: "executive"}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%s: failed to find next executive: %w", op, err)
	}

	if err := s.staff.SetCursor(ctx, tx, exec.ID); err != nil {
		return nil, fmt.Errorf("%s: failed to persist cursor: %w", op, err)
	}

	s.log.Info("executive allocated",
		slog.String("op", op),
		slog.Int64("cursor_was", cursor),
		slog.Int64("executive_id", exec.ID),
	)

	return exec, nil
}

func (s *AllocatorServiceImpl) AllocateAnalyst(ctx context.Context) (*domain.Analyst, error) {
	const op = "internal.service.allocator.AllocateAnalyst"

	analyst, err := s.staff.RandomActiveAnalyst(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, &apperrors.NoActiveStaffError{Kind: "analyst"}
	}

	if err != nil {
		return nil, fmt.Errorf("%s: failed to pick analyst: %w", op, err)
	}

	return analyst, nil
}
