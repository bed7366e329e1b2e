package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/studentplus/schoolportal/services"
)

// convert string -> int; fall back to def when it does not parse
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func atouintOr(s string, def uint) uint {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return def
	}
	return uint(n)
}

// PayloadValidator adapts validator/v10 to echo's Validator hook.
type PayloadValidator struct {
	validate *validator.Validate
}

func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{validate: validator.New()}
}

func (v *PayloadValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "detail": err.Error()})
	}
	return nil
}

// serviceError maps the service error kinds onto HTTP responses. Store
// failures are the only 5xx; policy and validation failures happened
// before any write.
func serviceError(c echo.Context, err error) error {
	var pv *services.PolicyViolation
	if errors.As(err, &pv) {
		return c.JSON(http.StatusConflict, map[string]any{"error": "POLICY_VIOLATION", "date": pv.Date, "reason": pv.Reason})
	}
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": map[string]string{ve.Field: ve.Reason}})
	}
	var se *services.StoreError
	if errors.As(err, &se) {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "STORE_ERROR", "op": se.Op})
	}
	return c.JSON(http.StatusInternalServerError, map[string]any{"error": err.Error()})
}
