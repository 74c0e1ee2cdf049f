package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// ValidationError reports a form field that failed validation. The store is
// never touched when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "is required")
	}
	return value, nil
}

func requireDate(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "is required")
	}
	return optionalDate(field, value)
}

func optionalDate(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return "", invalid(field, "must be a date in YYYY-MM-DD form")
	}
	return value, nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, invalid(field, "is required")
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, invalid(field, "must be a number")
	}
	if amount.Exponent() < -2 && !amount.Equal(amount.Round(2)) {
		return decimal.Zero, invalid(field, "must have at most two decimal places")
	}
	return amount, nil
}

func parseID(field, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, invalid(field, "is required")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(field, "is not a valid selection")
	}
	return id, nil
}
