// Package errors provides standardized error handling for the recommendation
// service and its HTTP surface.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"
	ErrCodeStructuringParseFailed  ErrorCode = "STRUCTURING_PARSE_FAILED"

	ErrCodeNoEligibleCards ErrorCode = "NO_ELIGIBLE_CARDS"

	ErrCodeExplanationParseFailed ErrorCode = "EXPLANATION_PARSE_FAILED"

	ErrCodeLLMUpstreamFailed ErrorCode = "LLM_UPSTREAM_FAILED"
	ErrCodeLLMTimeout        ErrorCode = "LLM_TIMEOUT"

	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error type carried across the service boundary.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. HTTP Integration
// ==========================

// HTTPStatus maps an error to the status code of the service surface:
// bad-request for structuring/validation failures, not-found when no card
// passes the eligibility gate, bad-gateway for upstream LLM failures, and
// internal for everything else (including explanation parse failures).
func HTTPStatus(err error) int {
	var std *StandardError
	if !errors.As(err, &std) {
		return http.StatusInternalServerError
	}

	switch std.Code {
	case ErrCodeProfileValidationFailed, ErrCodeStructuringParseFailed:
		return http.StatusBadRequest
	case ErrCodeNoEligibleCards:
		return http.StatusNotFound
	case ErrCodeLLMUpstreamFailed, ErrCodeLLMTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code extracts the ErrorCode, defaulting to INTERNAL_ERROR.
func Code(err error) ErrorCode {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code
	}
	return ErrCodeInternal
}

// ==========================
// 3. Error Constructors
// ==========================

// NewProfileValidationFailedError reports a profile violating the fixed
// enumerations or numeric constraints.
func NewProfileValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileValidationFailed,
		Message:   "User profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStructuringParseFailedError reports unusable output from the
// structuring service.
func NewStructuringParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStructuringParseFailed,
		Message:   "Could not extract a structured profile from model output",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoEligibleCardsError reports an empty eligible set for the given income.
func NewNoEligibleCardsError(income int) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoEligibleCards,
		Message:   "No eligible cards found",
		Details:   fmt.Sprintf("income: %d", income),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExplanationParseFailedError reports unusable output from the
// explanation service. The whole recommendation fails; there is no
// cards-without-reasons partial result.
func NewExplanationParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExplanationParseFailed,
		Message:   "Could not parse reasons from model output",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMUpstreamFailedError creates a retryable upstream call error.
func NewLLMUpstreamFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMUpstreamFailed,
		Message:   "Text-generation service call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLLMTimeoutError creates a retryable upstream timeout error.
func NewLLMTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLLMTimeout,
		Message:   "Text-generation service timed out",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogInvalidError reports a dataset that failed schema validation or
// decoding at startup.
func NewCatalogInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "Card catalog failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
