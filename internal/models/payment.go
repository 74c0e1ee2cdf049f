package models

import "github.com/shopspring/decimal"

// PaymentMode is how a payment was received.
type PaymentMode string

const (
	ModeCash   PaymentMode = "Cash"
	ModeUPI    PaymentMode = "UPI"
	ModeBank   PaymentMode = "Bank"
	ModeCheque PaymentMode = "Cheque"
	ModeOther  PaymentMode = "Other"
)

// PaymentModes lists the selectable modes in display order.
var PaymentModes = []PaymentMode{ModeCash, ModeUPI, ModeBank, ModeCheque, ModeOther}

// Valid reports whether m is one of the known modes.
func (m PaymentMode) Valid() bool {
	for _, known := range PaymentModes {
		if m == known {
			return true
		}
	}
	return false
}

// Payment represents a partial fee payment received from a client.
type Payment struct {
	// ID is assigned by the store on insert.
	ID int64

	// ClientID references the owning client.
	ClientID int64

	// ClientName is filled in by listings that join on the client.
	ClientName string

	// Date is the day the payment was received, YYYY-MM-DD.
	Date string

	// Amount is the amount received. Always positive.
	Amount decimal.Decimal

	// Mode is how the payment was made. Rows written before modes were
	// recorded may leave it empty.
	Mode PaymentMode

	// Note is free text such as a cheque or transaction number.
	Note string
}
