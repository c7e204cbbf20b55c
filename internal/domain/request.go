package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
	RequestStatusReturned RequestStatus = "RETURNED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusReturned:
		return true
	}
	return false
}

// Terminal reports whether no further transition out of the status exists.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusRejected || s == RequestStatusReturned
}

// LoanRequest is a borrow request against an item. ItemName and UserName are
// snapshots taken at creation time; UserName may be admin-overridden free
// text decoupled from UserID.
type LoanRequest struct {
	ID               int32         `json:"id"`
	ItemID           int32         `json:"item_id"`
	ItemName         string        `json:"item_name"`
	UserID           int32         `json:"user_id"`
	UserName         string        `json:"user_name"`
	Quantity         int32         `json:"quantity"`
	Status           RequestStatus `json:"status"`
	Notes            string        `json:"notes"`
	ReturnDate       *time.Time    `json:"return_date,omitempty"` // expected return
	ActualReturnDate *time.Time    `json:"actual_return_date,omitempty"`
	CreatedOn        time.Time     `json:"created_on"`
	UpdatedOn        time.Time     `json:"updated_on"`
}
