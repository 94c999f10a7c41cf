package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for date-only fields, as submitted by the
// frontend's date inputs.
const dateLayout = "2006-01-02"

// parseDate validates an optional YYYY-MM-DD value, recording a field error
// on failure.
func parseDate(fe fieldErrors, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		fe.add(field, "Must be a valid date (YYYY-MM-DD).")
		return nil
	}
	return &t
}

// parseRequiredDate is parseDate for non-nullable date fields.
func parseRequiredDate(fe fieldErrors, field, value string) time.Time {
	if value == "" {
		fe.add(field, "This field is required.")
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		fe.add(field, "Must be a valid date (YYYY-MM-DD).")
		return time.Time{}
	}
	return t
}

// parseUUID validates a required UUID reference field.
func parseUUID(fe fieldErrors, field, value, requiredMsg string) uuid.UUID {
	if value == "" {
		fe.add(field, requiredMsg)
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		fe.add(field, "Must be a valid identifier.")
		return uuid.Nil
	}
	return id
}

// parseOptionalUUID validates a nullable UUID reference field.
func parseOptionalUUID(fe fieldErrors, field, value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		fe.add(field, "Must be a valid identifier.")
		return nil
	}
	return &id
}

// checkNonNegative records a field error when an optional decimal is below zero.
func checkNonNegative(fe fieldErrors, field string, value *decimal.Decimal, msg string) {
	if value != nil && value.IsNegative() {
		fe.add(field, msg)
	}
}

// checkMaxLen records a field error when a string exceeds the limit.
func checkMaxLen(fe fieldErrors, field, value string, max int) {
	if len(value) > max {
		fe.add(field, "Must not exceed 255 characters.")
	}
}
