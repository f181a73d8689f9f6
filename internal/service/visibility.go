package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgarciab/retention-portal/internal/apperrors"
	"github.com/dgarciab/retention-portal/internal/domain"
)

// ListRequests returns the requests the actor is allowed to see. Superusers
// see everything, commercial executives see what they created, retention
// executives see what is assigned to their staff record. Anyone else gets an
// empty list rather than an error.
func (s *RequestServiceImpl) ListRequests(ctx context.Context, actor domain.Actor) (*RequestListResult, error) {
	const op = "internal.service.request.ListRequests"
	log := s.log.With(slog.String("op", op), slog.Int64("identity_id", actor.IdentityID))

	var msgs domain.Messages

	summaries, err := s.visibleRequests(ctx, actor, log, &msgs)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list requests: %w", op, err)
	}

	return &RequestListResult{
		Requests: toRequestSummaryViews(summaries),
		Messages: msgs,
	}, nil
}

func (s *RequestServiceImpl) visibleRequests(
	ctx context.Context,
	actor domain.Actor,
	log *slog.Logger,
	msgs *domain.Messages,
) ([]domain.RequestSummary, error) {
	switch {
	case actor.HasRole(domain.RoleSuperuser):
		return s.query.ListAll(ctx)

	case actor.HasRole(domain.RoleCommercialExecutive):
		return s.query.ListByCreator(ctx, actor.IdentityID)

	case actor.HasRole(domain.RoleRetentionExecutive):
		exec, err := s.staff.ExecutiveByIdentity(ctx, actor.IdentityID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				// The role says retention executive but no staff record is
				// bound to this identity. Degrade to an empty list with a
				// warning instead of failing the page.
				log.Warn("retention executive identity has no bound staff record")
				msgs.Warning("No executive record is linked to your account. Contact an administrator.")

				return nil, nil
			}

			return nil, err
		}

		return s.query.ListByExecutive(ctx, exec.ID)

	default:
		log.Warn("actor has no recognized role", slog.String("roles", fmt.Sprint(actor.Roles)))

		return nil, nil
	}
}
