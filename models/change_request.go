package models

import (
	"time"
)

// RequestType identifies the mutation a change request proposes.
type RequestType string

const (
	RequestUpdate RequestType = "update"
	RequestDelete RequestType = "delete"
)

// RequestStatus is the lifecycle state of a change request. Transitions are
// pending -> approved or pending -> rejected, never reversed.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ChangeRequest is a proposed product mutation awaiting review. OldData is a
// snapshot of the product at submission time; NewData is nil for deletion
// requests. The request keeps its snapshot even if the target product is
// deleted before review.
type ChangeRequest struct {
	RequestID   string        `json:"request_id" db:"request_id"`
	ProductID   string        `json:"product_id" db:"product_id"`
	Type        RequestType   `json:"request_type" db:"request_type"`
	OldData     Product       `json:"old_data" db:"old_data"`
	NewData     *Product      `json:"new_data,omitempty" db:"new_data"`
	RequestedBy string        `json:"requested_by" db:"requested_by"`
	Status      RequestStatus `json:"status" db:"status"`
	ReviewNotes string        `json:"review_notes" db:"review_notes"`
	DecidedBy   string        `json:"decided_by,omitempty" db:"decided_by"`
	SubmittedAt time.Time     `json:"submitted_at" db:"submitted_at"`
	DecidedAt   *time.Time    `json:"decided_at,omitempty" db:"decided_at"`
}

// IsPending reports whether the request is still awaiting a decision.
func (r *ChangeRequest) IsPending() bool {
	return r.Status == StatusPending
}

// TargetTenant returns the tenant the request belongs to, taken from the
// product snapshot so it stays meaningful after the product is gone.
func (r *ChangeRequest) TargetTenant() string {
	return r.OldData.Tenant
}
