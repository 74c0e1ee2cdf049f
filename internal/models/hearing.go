package models

// Hearing represents a scheduled court date for a client's case.
type Hearing struct {
	// ID is assigned by the store on insert.
	ID int64

	// ClientID references the owning client.
	ClientID int64

	// ClientName is filled in by listings that join on the client.
	ClientName string

	// Date is the hearing date, YYYY-MM-DD.
	Date string

	// Note is free text such as the purpose of the hearing.
	Note string
}
