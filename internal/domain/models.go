package domain

import (
	"time"
)

// Workflow status names. The rows live in the request_statuses catalog
// table; these constants are the seeded names the engine anchors on.
const (
	StatusRegistered           = "Registered"
	StatusInAnalysis           = "In Analysis"
	StatusApproved             = "Approved"
	StatusRejected             = "Rejected"
	StatusDeactivationExecuted = "Deactivation Executed"
)

// CursorKey is the singleton assignment_config row holding the id of the
// last round-robin-assigned executive.
const CursorKey = "last_executive_id"

type Client struct {
	ID           int64     `db:"id"`
	TaxID        string    `db:"tax_id"`
	Name         string    `db:"name"`
	Status       string    `db:"status"`
	RegisteredAt time.Time `db:"registered_at"`
}

type Circuit struct {
	ID          int64     `db:"id"`
	ClientID    int64     `db:"client_id"`
	Name        string    `db:"name"`
	ServiceType *string   `db:"service_type"`
	Status      string    `db:"status"`
	MonthlyRent float64   `db:"monthly_rent"`
	CreatedAt   time.Time `db:"created_at"`
}

type Executive struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Active bool   `db:"active"`
}

type Analyst struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Active bool   `db:"active"`
}

// StaffKind discriminates identity_links rows.
type StaffKind string

const (
	StaffExecutive StaffKind = "executive"
	StaffAnalyst   StaffKind = "analyst"
)

// IdentityLink maps an externally-issued actor identity to a staff record.
// The mapping is explicit so the two id spaces can evolve independently.
type IdentityLink struct {
	IdentityID int64     `db:"identity_id"`
	Kind       StaffKind `db:"kind"`
	StaffID    int64     `db:"staff_id"`
}

type RequestStatus struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type ApprovalLevel struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Position int    `db:"position"`
}

type Request struct {
	ID                int64     `db:"id"`
	ClientID          int64     `db:"client_id"`
	ExecutiveID       int64     `db:"executive_id"`
	AnalystID         int64     `db:"analyst_id"`
	StatusID          int64     `db:"status_id"`
	ApprovalLevelID   int64     `db:"approval_level_id"`
	CreatedAt         time.Time `db:"created_at"`
	Observations      string    `db:"observations"`
	AutoAssigned      bool      `db:"auto_assigned"`
	DeactivationDate  time.Time `db:"deactivation_date"`
	CreatorIdentityID *int64    `db:"creator_identity_id"`
}

// RequestSummary is the denormalized row shape for request listings.
type RequestSummary struct {
	ID               int64     `db:"id"`
	ClientName       string    `db:"client_name"`
	ExecutiveName    string    `db:"executive_name"`
	AnalystName      string    `db:"analyst_name"`
	StatusName       string    `db:"status_name"`
	CreatedAt        time.Time `db:"created_at"`
	DeactivationDate time.Time `db:"deactivation_date"`
}

// RequestDetail is a request joined with its current catalog names.
type RequestDetail struct {
	Request
	ClientName    string `db:"client_name"`
	ExecutiveName string `db:"executive_name"`
	AnalystName   string `db:"analyst_name"`
	StatusName    string `db:"status_name"`
	LevelName     string `db:"level_name"`
}

type Comment struct {
	ID        int64     `db:"id"`
	RequestID int64     `db:"request_id"`
	Author    string    `db:"author"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

// StatusHistoryEntry is the audit trail of record for status transitions.
// Rows are append-only and never mutated.
type StatusHistoryEntry struct {
	ID               int64     `db:"id"`
	RequestID        int64     `db:"request_id"`
	PreviousStatusID int64     `db:"previous_status_id"`
	NewStatusID      int64     `db:"new_status_id"`
	ChangedAt        time.Time `db:"changed_at"`
	Author           string    `db:"author"`
}

// StatusHistoryView joins a history entry with status names for display.
type StatusHistoryView struct {
	ID             int64     `db:"id"`
	PreviousStatus string    `db:"previous_status"`
	NewStatus      string    `db:"new_status"`
	ChangedAt      time.Time `db:"changed_at"`
	Author         string    `db:"author"`
}

// AssignmentHistoryEntry records executive reassignments. No workflow path
// writes it today; the table exists for schema completeness.
type AssignmentHistoryEntry struct {
	ID                  int64     `db:"id"`
	RequestID           int64     `db:"request_id"`
	PreviousExecutiveID int64     `db:"previous_executive_id"`
	NewExecutiveID      int64     `db:"new_executive_id"`
	ChangedAt           time.Time `db:"changed_at"`
	Reason              string    `db:"reason"`
}

// DashboardSummary holds the scalar counters for the dashboard.
// ResolvedRequests is derived: total minus pending.
type DashboardSummary struct {
	TotalClients     int `db:"total_clients"`
	TotalRequests    int `db:"total_requests"`
	PendingRequests  int `db:"pending_requests"`
	ResolvedRequests int
}
