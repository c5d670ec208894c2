// Package validation checks raw form input before any request is built.
// Every check stops at the first violation and reports it as an *Error.
package validation

import (
	"math"
	"strconv"
	"strings"

	"printshop/internal/core/domain"
)

const (
	MsgPrintTime   = "print time must be between 0.1 and 100 hours"
	MsgElectricity = "electricity cost must be between 0 and 50 RUB per hour"
	MsgInfill      = "infill must be between 5% and 100%"
	MsgLayerHeight = "layer height must be between 0.1 and 0.5 mm"
	MsgMaterial    = "select a supported material"
	MsgComplexity  = "select a model complexity"

	MsgEmail            = "enter your email"
	MsgPassword         = "enter your password"
	MsgName             = "enter your name"
	MsgPasswordMismatch = "passwords do not match"
	MsgPasswordLength   = "password must be at least 6 characters"

	MsgModelName        = "enter a model name"
	MsgModelDescription = "enter a model description"
	MsgFileRequired     = "select a 3D model file"
	MsgNegativePrice    = "price cannot be negative"
	MsgCategory         = "select a category"

	MsgFileFormat = "supported formats: STL, OBJ, 3MF, GCODE, PLY"
	MsgFileSize   = "file size must not exceed 50MB"

	MsgModelID         = "select a model to order"
	MsgDeliveryAddress = "enter a delivery address"
	MsgPhone           = "enter a phone number"
	MsgTotalPrice      = "order total must be greater than 0"
)

// Error is a single failed check. It matches domain.ErrValidation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	return target == domain.ErrValidation
}

func (e *Error) UserMessage() string {
	return e.Message
}

func fail(field, msg string) *Error {
	return &Error{Field: field, Message: msg}
}

// parseDecimal rejects anything that is not a finite number. Empty input,
// "NaN" and "Inf" all fail.
func parseDecimal(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseInteger(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
