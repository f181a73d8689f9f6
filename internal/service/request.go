package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgarciab/retention-portal/internal/apperrors"
	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/dgarciab/retention-portal/internal/repository"
	"github.com/jmoiron/sqlx"
)

const dateLayout = "2006-01-02"

type CreateRequestInput struct {
	ClientID         int64
	CircuitIDs       []int64
	Observations     string
	DeactivationDate time.Time
}

type CreateRequestResult struct {
	RequestID     int64           `json:"request_id"`
	ExecutiveName string          `json:"executive_name"`
	AnalystName   string          `json:"analyst_name"`
	Messages      domain.Messages `json:"messages"`
}

type RequestSummaryView struct {
	RequestID        int64     `json:"request_id"`
	ClientName       string    `json:"client_name"`
	ExecutiveName    string    `json:"executive_name"`
	AnalystName      string    `json:"analyst_name"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	DeactivationDate string    `json:"deactivation_date"`
}

type RequestListResult struct {
	Requests []RequestSummaryView `json:"requests"`
	Messages domain.Messages      `json:"messages,omitempty"`
}

type CircuitView struct {
	CircuitID   int64   `json:"circuit_id"`
	Name        string  `json:"name"`
	ServiceType *string `json:"service_type,omitempty"`
	Status      string  `json:"status"`
	MonthlyRent float64 `json:"monthly_rent"`
}

type CommentView struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type StatusHistoryEntryView struct {
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedAt      time.Time `json:"changed_at"`
	Author         string    `json:"author"`
}

type RequestDetailResult struct {
	RequestID        int64                    `json:"request_id"`
	ClientName       string                   `json:"client_name"`
	ExecutiveName    string                   `json:"executive_name"`
	AnalystName      string                   `json:"analyst_name"`
	Status           string                   `json:"status"`
	ApprovalLevel    string                   `json:"approval_level"`
	CreatedAt        time.Time                `json:"created_at"`
	Observations     string                   `json:"observations"`
	AutoAssigned     bool                     `json:"auto_assigned"`
	DeactivationDate string                   `json:"deactivation_date"`
	Circuits         []CircuitView            `json:"circuits"`
	Comments         []CommentView            `json:"comments"`
	History          []StatusHistoryEntryView `json:"history"`
	Messages         domain.Messages          `json:"messages,omitempty"`
}

type ChangeStatusResult struct {
	RequestID int64           `json:"request_id"`
	Status    string          `json:"status"`
	Changed   bool            `json:"changed"`
	Messages  domain.Messages `json:"messages"`
}

type CommentResult struct {
	Comment  CommentView     `json:"comment"`
	Messages domain.Messages `json:"messages"`
}

type StatusView struct {
	StatusID    int64  `json:"status_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RequestService is the lifecycle engine of the workflow: it creates
// requests, transitions their status with an audit trail, and serves the
// role-filtered read paths.
type RequestService interface {
	CreateRequest(ctx context.Context, actor domain.Actor, input CreateRequestInput) (*CreateRequestResult, error)
	ListRequests(ctx context.Context, actor domain.Actor) (*RequestListResult, error)
	ViewRequest(ctx context.Context, actor domain.Actor, requestID int64) (*RequestDetailResult, error)
	ChangeStatus(ctx context.Context, actor domain.Actor, requestID, statusID int64) (*ChangeStatusResult, error)
	AddComment(ctx context.Context, actor domain.Actor, requestID int64, text string) (*CommentResult, error)
	ListStatuses(ctx context.Context) ([]StatusView, error)
}

type RequestServiceImpl struct {
	BaseService
	allocator AllocatorService
	catalog   repository.CatalogRepository
	clients   repository.ClientRepository
	staff     repository.StaffRepository
	cmd       repository.RequestCommandRepository
	query     repository.RequestQueryRepository
}

func NewRequestService(
	db Transactor,
	log *slog.Logger,
	allocator AllocatorService,
	catalog repository.CatalogRepository,
	clients repository.ClientRepository,
	staff repository.StaffRepository,
	cmd repository.RequestCommandRepository,
	query repository.RequestQueryRepository,
) *RequestServiceImpl {
	return &RequestServiceImpl{
		BaseService: NewBaseService(db, log),
		allocator:   allocator,
		catalog:     catalog,
		clients:     clients,
		staff:       staff,
		cmd:         cmd,
		query:       query,
	}
}

func (s *RequestServiceImpl) CreateRequest(ctx context.Context, actor domain.Actor, input CreateRequestInput) (*CreateRequestResult, error) {
	const op = "internal.service.request.CreateRequest"
	log := s.log.With(slog.String("op", op), slog.Int64("client_id", input.ClientID))

	if _, err := s.clients.GetClientByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client with id %d", apperrors.ErrNotFound, input.ClientID)
		}

		return nil, fmt.Errorf("%s: failed to resolve client: %w", op, err)
	}

	if len(input.CircuitIDs) == 0 {
		return nil, apperrors.ErrNoCircuitsSelected
	}

	if input.DeactivationDate.IsZero() {
		return nil, apperrors.ErrMissingDeactivationDate
	}

	initialStatus, err := s.catalog.GetStatusByName(ctx, domain.StatusRegistered)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.CatalogMisconfiguredError{Entry: "status '" + domain.StatusRegistered + "'"}
		}

		return nil, fmt.Errorf("%s: failed to resolve initial status: %w", op, err)
	}

	initialLevel, err := s.catalog.GetLevelByPosition(ctx, 1)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.CatalogMisconfiguredError{Entry: "approval level with position 1"}
		}

		return nil, fmt.Errorf("%s: failed to resolve initial approval level: %w", op, err)
	}

	analyst, err := s.allocator.AllocateAnalyst(ctx)
	if err != nil {
		return nil, err
	}

	creatorID := actor.IdentityID

	req := &domain.Request{
		ClientID:          input.ClientID,
		AnalystID:         analyst.ID,
		StatusID:          initialStatus.ID,
		ApprovalLevelID:   initialLevel.ID,
		Observations:      input.Observations,
		AutoAssigned:      true,
		DeactivationDate:  input.DeactivationDate,
		CreatorIdentityID: &creatorID,
	}

	var exec *domain.Executive

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		exec, err = s.allocator.AllocateExecutive(ctx, tx)
		if err != nil {
			return err
		}

		req.ExecutiveID = exec.ID

		if err := s.cmd.CreateRequest(ctx, tx, req); err != nil {
			return err
		}

		return s.cmd.LinkCircuits(ctx, tx, req.ID, input.CircuitIDs)
	})

	if err != nil {
		return nil, err
	}

	log.Info("request created",
		slog.Int64("request_id", req.ID),
		slog.Int64("executive_id", exec.ID),
		slog.Int64("analyst_id", analyst.ID),
	)

	var msgs domain.Messages
	msgs.Success("Request SOL-%d created and assigned to %s.", req.ID, exec.Name)

	return &CreateRequestResult{
		RequestID:     req.ID,
		ExecutiveName: exec.Name,
		AnalystName:   analyst.Name,
		Messages:      msgs,
	}, nil
}

// ViewRequest returns the request detail for display. Viewing is not
// side-effect-free: the first view of a request still in Registered advances
// it to In Analysis and writes the audit entry, atomically.
func (s *RequestServiceImpl) ViewRequest(ctx context.Context, actor domain.Actor, requestID int64) (*RequestDetailResult, error) {
	const op = "internal.service.request.ViewRequest"
	log := s.log.With(slog.String("op", op), slog.Int64("request_id", requestID))

	detail, err := s.query.GetRequestDetail(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get request: %w", op, err)
	}

	var msgs domain.Messages

	if detail.StatusName == domain.StatusRegistered {
		target, err := s.catalog.GetStatusByName(ctx, domain.StatusInAnalysis)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, &apperrors.CatalogMisconfiguredError{Entry: "status '" + domain.StatusInAnalysis + "'"}
			}

			return nil, fmt.Errorf("%s: failed to resolve target status: %w", op, err)
		}

		var transitioned bool

		err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
			locked, err := s.cmd.GetRequestByIDWithLock(ctx, tx, requestID)
			if err != nil {
				return fmt.Errorf("%s: failed to get request with lock: %w", op, err)
			}

			// Re-check under the lock: a concurrent view may have already
			// advanced the request.
			if locked.StatusID != detail.StatusID {
				return nil
			}

			entry := &domain.StatusHistoryEntry{
				RequestID:        requestID,
				PreviousStatusID: locked.StatusID,
				NewStatusID:      target.ID,
				Author:           actor.Name,
			}

			if err := s.cmd.AppendStatusHistory(ctx, tx, entry); err != nil {
				return fmt.Errorf("%s: failed to append history: %w", op, err)
			}

			if err := s.cmd.UpdateRequestStatus(ctx, tx, requestID, target.ID); err != nil {
				return fmt.Errorf("%s: failed to update status: %w", op, err)
			}

			transitioned = true

			return nil
		})

		if err != nil {
			return nil, err
		}

		if transitioned {
			log.Info("request advanced on first view", slog.String("status", target.Name))
			msgs.Info("Request SOL-%d has been moved to '%s'.", requestID, target.Name)
		}

		detail.StatusID = target.ID
		detail.StatusName = target.Name
	}

	circuits, err := s.query.GetCircuits(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get circuits: %w", op, err)
	}

	comments, err := s.query.GetComments(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get comments: %w", op, err)
	}

	history, err := s.query.GetStatusHistory(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get status history: %w", op, err)
	}

	result := toRequestDetailResult(detail, circuits, comments, history)
	result.Messages = msgs

	return result, nil
}

func (s *RequestServiceImpl) ChangeStatus(ctx context.Context, actor domain.Actor, requestID, statusID int64) (*ChangeStatusResult, error) {
	const op = "internal.service.request.ChangeStatus"
	log := s.log.With(slog.String("op", op), slog.Int64("request_id", requestID), slog.Int64("status_id", statusID))

	target, err := s.catalog.GetStatusByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: status with id %d", apperrors.ErrInvalidStatus, statusID)
		}

		return nil, fmt.Errorf("%s: failed to resolve target status: %w", op, err)
	}

	var changed bool

	err = s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		locked, err := s.cmd.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("%s: failed to get request with lock: %w", op, err)
		}

		if locked.StatusID == target.ID {
			return nil
		}

		entry := &domain.StatusHistoryEntry{
			RequestID:        requestID,
			PreviousStatusID: locked.StatusID,
			NewStatusID:      target.ID,
			Author:           actor.Name,
		}

		if err := s.cmd.AppendStatusHistory(ctx, tx, entry); err != nil {
			return fmt.Errorf("%s: failed to append history: %w", op, err)
		}

		if err := s.cmd.UpdateRequestStatus(ctx, tx, requestID, target.ID); err != nil {
			return fmt.Errorf("%s: failed to update status: %w", op, err)
		}

		changed = true

		return nil
	})

	if err != nil {
		return nil, err
	}

	var msgs domain.Messages

	if changed {
		log.Info("request status changed", slog.String("status", target.Name))
		msgs.Success("Request SOL-%d status changed to '%s'.", requestID, target.Name)
	} else {
		msgs.Info("Request SOL-%d is already in status '%s'.", requestID, target.Name)
	}

	return &ChangeStatusResult{
		RequestID: requestID,
		Status:    target.Name,
		Changed:   changed,
		Messages:  msgs,
	}, nil
}

func (s *RequestServiceImpl) AddComment(ctx context.Context, actor domain.Actor, requestID int64, text string) (*CommentResult, error) {
	const op = "internal.service.request.AddComment"

	body := strings.TrimSpace(text)
	if body == "" {
		return nil, apperrors.ErrEmptyComment
	}

	comment, err := s.cmd.AddComment(ctx, requestID, actor.Name, body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to add comment: %w", op, err)
	}

	var msgs domain.Messages
	msgs.Success("Comment added to request SOL-%d.", requestID)

	return &CommentResult{
		Comment:  toCommentView(*comment),
		Messages: msgs,
	}, nil
}

func (s *RequestServiceImpl) ListStatuses(ctx context.Context) ([]StatusView, error) {
	const op = "internal.service.request.ListStatuses"

	statuses, err := s.catalog.ListStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list statuses: %w", op, err)
	}

	views := make([]StatusView, len(statuses))
	for i, status := range statuses {
		views[i] = StatusView{
			StatusID:    status.ID,
			Name:        status.Name,
			Description: status.Description,
		}
	}

	return views, nil
}

func toRequestDetailResult(
	detail *domain.RequestDetail,
	circuits []domain.Circuit,
	comments []domain.Comment,
	history []domain.StatusHistoryView,
) *RequestDetailResult {
	circuitViews := make([]CircuitView, len(circuits))
	for i, circuit := range circuits {
		circuitViews[i] = CircuitView{
			CircuitID:   circuit.ID,
			Name:        circuit.Name,
			ServiceType: circuit.ServiceType,
			Status:      circuit.Status,
			MonthlyRent: circuit.MonthlyRent,
		}
	}

	commentViews := make([]CommentView, len(comments))
	for i, comment := range comments {
		commentViews[i] = toCommentView(comment)
	}

	historyViews := make([]StatusHistoryEntryView, len(history))
	for i, entry := range history {
		historyViews[i] = StatusHistoryEntryView{
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			ChangedAt:      entry.ChangedAt,
			Author:         entry.Author,
		}
	}

	return &RequestDetailResult{
		RequestID:        detail.ID,
		ClientName:       detail.ClientName,
		ExecutiveName:    detail.ExecutiveName,
		AnalystName:      detail.AnalystName,
		Status:           detail.StatusName,
		ApprovalLevel:    detail.LevelName,
		CreatedAt:        detail.CreatedAt,
		Observations:     detail.Observations,
		AutoAssigned:     detail.AutoAssigned,
		DeactivationDate: detail.DeactivationDate.Format(dateLayout),
		Circuits:         circuitViews,
		Comments:         commentViews,
		History:          historyViews,
	}
}

func toCommentView(comment domain.Comment) CommentView {
	return CommentView{
		Author:    comment.Author,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

func toRequestSummaryViews(summaries []domain.RequestSummary) []RequestSummaryView {
	views := make([]RequestSummaryView, len(summaries))
	for i, summary := range summaries {
		views[i] = RequestSummaryView{
			RequestID:        summary.ID,
			ClientName:       summary.ClientName,
			ExecutiveName:    summary.ExecutiveName,
			AnalystName:      summary.AnalystName,
			Status:           summary.StatusName,
			CreatedAt:        summary.CreatedAt,
			DeactivationDate: summary.DeactivationDate.Format(dateLayout),
		}
	}

	return views
}
