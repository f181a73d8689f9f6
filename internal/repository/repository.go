// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the service layer.
package repository

import (
	"context"

	"github.com/dgarciab/retention-portal/internal/domain"
	"github.com/jmoiron/sqlx"
)

// CatalogRepository reads the fixed reference data the workflow anchors on.
// Catalog rows are seeded by migration and referenced by requests with
// protected foreign keys, so they are never written through this interface.
type CatalogRepository interface {
	// GetStatusByName resolves a status catalog row by its unique name.
	// It returns apperrors.ErrNotFound if no such status exists.
	GetStatusByName(ctx context.Context, name string) (*domain.RequestStatus, error)

	// GetStatusByID resolves a status catalog row by id.
	// It returns apperrors.ErrNotFound if no such status exists.
	GetStatusByID(ctx context.Context, id int64) (*domain.RequestStatus, error)

	// GetLevelByPosition resolves an approval level by its integer order
	// (1 = lowest). It returns apperrors.ErrNotFound if absent.
	GetLevelByPosition(ctx context.Context, position int) (*domain.ApprovalLevel, error)

	// ListStatuses returns all status catalog rows ordered by id, for the
	// caller's status selector.
	ListStatuses(ctx context.Context) ([]domain.RequestStatus, error)
}

// ClientRepository covers the client/circuit read paths that feed the
// request creation form.
type ClientRepository interface {
	// GetClientByID returns apperrors.ErrNotFound if the client does not exist.
	GetClientByID(ctx context.Context, id int64) (*domain.Client, error)

	// SearchClients finds clients whose display name contains the query,
	// case-insensitively, capped at limit rows.
	SearchClients(ctx context.Context, query string, limit uint64) ([]domain.Client, error)

	// GetCircuitsByClient lists all circuits owned by a client.
	GetCircuitsByClient(ctx context.Context, clientID int64) ([]domain.Circuit, error)
}

// StaffRepository covers executives, analysts, the identity-link mapping
// table, and the round-robin assignment cursor.
type StaffRepository interface {
	// CursorForUpdate reads the assignment cursor under a row-level lock,
	// creating the row with value 0 on first use. It must run inside the
	// same transaction that creates the request.
	CursorForUpdate(ctx context.Context, tx *sqlx.Tx) (int64, error)

	// SetCursor persists the id of the executive just assigned.
	SetCursor(ctx context.Context, tx *sqlx.Tx, value int64) error

	// FirstActiveExecutiveAfter returns the active executive with the
	// smallest id strictly greater than afterID.
	// It returns apperrors.ErrNotFound if no such executive exists.
	FirstActiveExecutiveAfter(ctx context.Context, tx *sqlx.Tx, afterID int64) (*domain.Executive, error)

	// FirstActiveExecutive returns the active executive with the smallest id.
	// It returns apperrors.ErrNotFound if there are no active executives.
	FirstActiveExecutive(ctx context.Context, tx *sqlx.Tx) (*domain.Executive, error)

	// RandomActiveAnalyst picks one active analyst uniformly at random.
	// It returns apperrors.ErrNotFound if there are no active analysts.
	RandomActiveAnalyst(ctx context.Context) (*domain.Analyst, error)

	// ListActiveExecutives and ListActiveAnalysts return the active staff
	// ordered by ascending id.
	ListActiveExecutives(ctx context.Context) ([]domain.Executive, error)
	ListActiveAnalysts(ctx context.Context) ([]domain.Analyst, error)

	// ExecutiveByIdentity resolves the executive record linked to an
	// external actor identity through the identity_links mapping table.
	// It returns apperrors.ErrNotFound if the identity has no link.
	ExecutiveByIdentity(ctx context.Context, identityID int64) (*domain.Executive, error)

	// BindExecutive creates an executive record and links it to an external
	// identity in one transaction. It returns an
	// apperrors.IdentityAlreadyBoundError if the identity is already bound.
	BindExecutive(ctx context.Context, identityID int64, name, email string) (*domain.Executive, error)

	// BindAnalyst is the analyst counterpart of BindExecutive.
	BindAnalyst(ctx context.Context, identityID int64, name, email string) (*domain.Analyst, error)

	// UnbindExecutive removes the link and the executive record. The delete
	// is blocked by protected foreign keys while requests reference the
	// record. It returns apperrors.ErrNotFound if the identity has no link.
	UnbindExecutive(ctx context.Context, identityID int64) error

	// UnbindAnalyst is the analyst counterpart of UnbindExecutive.
	UnbindAnalyst(ctx context.Context, identityID int64) error
}

// RequestCommandRepository defines the write and locking operations on
// requests. All methods taking a *sqlx.Tx are expected to run within a
// transaction.
type RequestCommandRepository interface {
	// CreateRequest inserts a request row and fills in its generated id and
	// creation timestamp.
	CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.Request) error

	// LinkCircuits associates circuits with a request. The pair is unique;
	// it returns apperrors.ErrNotFound if a circuit id does not resolve.
	LinkCircuits(ctx context.Context, tx *sqlx.Tx, requestID int64, circuitIDs []int64) error

	// GetRequestByIDWithLock retrieves a request and acquires a row-level
	// lock ("FOR UPDATE") so concurrent transitions serialize per row.
	// It returns apperrors.ErrNotFound if the request is not found.
	GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Request, error)

	// UpdateRequestStatus sets the request's current status. The caller is
	// responsible for appending the matching history entry in the same
	// transaction.
	UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID, statusID int64) error

	// AppendStatusHistory writes one immutable audit row.
	AppendStatusHistory(ctx context.Context, tx *sqlx.Tx, entry *domain.StatusHistoryEntry) error

	// AddComment appends a comment to a request.
	// It returns apperrors.ErrNotFound if the request does not exist.
	AddComment(ctx context.Context, requestID int64, author, body string) (*domain.Comment, error)
}

// RequestQueryRepository defines the read-only request operations, following
// the CQRS split of commands and queries.
type RequestQueryRepository interface {
	// GetRequestDetail retrieves a request joined with its catalog and
	// staff display names. Returns apperrors.ErrNotFound if absent.
	GetRequestDetail(ctx context.Context, id int64) (*domain.RequestDetail, error)

	// ListAll, ListByCreator and ListByExecutive return request summaries
	// ordered by creation time descending.
	ListAll(ctx context.Context) ([]domain.RequestSummary, error)
	ListByCreator(ctx context.Context, identityID int64) ([]domain.RequestSummary, error)
	ListByExecutive(ctx context.Context, executiveID int64) ([]domain.RequestSummary, error)

	// GetCircuits lists the circuits associated with a request.
	GetCircuits(ctx context.Context, requestID int64) ([]domain.Circuit, error)

	// GetComments lists a request's comments ordered by creation time ascending.
	GetComments(ctx context.Context, requestID int64) ([]domain.Comment, error)

	// GetStatusHistory lists a request's audit entries, newest first.
	GetStatusHistory(ctx context.Context, requestID int64) ([]domain.StatusHistoryView, error)
}

// ReportRepository computes the dashboard counters.
type ReportRepository interface {
	CountClients(ctx context.Context) (int, error)
	CountRequests(ctx context.Context) (int, error)

	// CountPendingRequests counts requests whose current status name is
	// Registered or In Analysis.
	CountPendingRequests(ctx context.Context) (int, error)
}
