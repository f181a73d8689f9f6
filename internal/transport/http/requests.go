package http

type createRequestRequest struct {
	ClientID         int64   `json:"client_id" validate:"required,gt=0"`
	CircuitIDs       []int64 `json:"circuit_ids" validate:"omitempty,dive,gt=0"`
	Observations     string  `json:"observations" validate:"max=2000"`
	DeactivationDate string  `json:"deactivation_date" validate:"dateonly"`
}

type changeStatusRequest struct {
	StatusID int64 `json:"status_id" validate:"required,gt=0"`
}

type addCommentRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

type bindStaffRequest struct {
	IdentityID int64  `json:"identity_id" validate:"required,gt=0"`
	Kind       string `json:"kind" validate:"required,oneof=executive analyst"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
}
