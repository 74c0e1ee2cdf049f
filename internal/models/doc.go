// Package models defines the core domain models for the case ledger.
//
// # Models
//
//   - Client: a client of the practice together with the case handled for them
//     and the fee agreed for it
//   - Hearing: a scheduled court date for a client's case
//   - Payment: a partial fee payment received from a client
//
// Hearings and payments are owned by a client. They are never edited once
// recorded and disappear only when their client is deleted.
//
// # Design Principles
//
// 1. **Store-shaped dates**: dates travel as the YYYY-MM-DD text the store
// keeps. Parsing happens where dates are compared (alerts), so a malformed
// value never blocks loading a table.
// 2. **Exact money**: fees and payment amounts are decimal.Decimal.
// 3. **IDs, not pointers**: relationships are expressed through ClientID.
// 4. **Manual status**: Client.PaymentStatus is whatever the user last set.
// It is not derived from payments and may disagree with the pending amount.
package models
