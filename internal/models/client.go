package models

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is the manually maintained fee status of a client.
type PaymentStatus string

const (
	StatusUnpaid PaymentStatus = "Unpaid"
	StatusPaid   PaymentStatus = "Paid"
)

// PaymentStatuses lists the selectable statuses in display order.
var PaymentStatuses = []PaymentStatus{StatusUnpaid, StatusPaid}

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// Client represents a client of the practice and the case handled for them.
type Client struct {
	// ID is assigned by the store on insert.
	ID int64

	// Name is the client's name. Listings sort on it case-insensitively.
	Name string

	// CaseDetails is a free-text description of the matter.
	CaseDetails string

	// Contact is a phone number or other contact line.
	Contact string

	// Court is the court the case is listed in. Optional.
	Court string

	// CaseNumber is the court's case number. Optional, but unique across
	// clients when set.
	CaseNumber string

	// Stage is the current stage of the proceedings. Optional.
	Stage string

	// FileNumber is the office's own file reference. Optional.
	FileNumber string

	// PartyRole is the side the client is on, e.g. Plaintiff or Defendant.
	// Optional free text.
	PartyRole string

	// AgreedFee is the total fee agreed with the client. Never negative.
	AgreedFee decimal.Decimal

	// PaymentStatus is informational only and is never recomputed from
	// recorded payments.
	PaymentStatus PaymentStatus

	// CommitmentDate is the date the fee was promised by, YYYY-MM-DD.
	// Empty when not set.
	CommitmentDate string

	// FirstVisitDate is the date of the first consultation. Older rows may
	// carry a time component after the date. Empty when not set.
	FirstVisitDate string
}
