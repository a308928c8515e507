package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomAlreadyExists     = errors.New("room already exists")
	ErrRoomFull              = errors.New("room capacity is full")
	ErrRoomOccupied          = errors.New("room has occupants")
	ErrGuestNotFound         = errors.New("guest not found")
	ErrInvalidPaymentAmount  = errors.New("payment amount must be positive")
	ErrInitialPaymentExceeds = errors.New("initial payment cannot exceed required amount")
	ErrProposalNotFound      = errors.New("payment proposal not found or expired")
	ErrInvalidMonthKey       = errors.New("month must be in YYYY-MM format")
	ErrInvalidPaymentType    = errors.New("payment type must be rent or security")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeRoomNotFound          = "ROOM_NOT_FOUND"
	ErrCodeRoomAlreadyExists     = "ROOM_ALREADY_EXISTS"
	ErrCodeRoomFull              = "ROOM_FULL"
	ErrCodeRoomOccupied          = "ROOM_OCCUPIED"
	ErrCodeGuestNotFound         = "GUEST_NOT_FOUND"
	ErrCodeInvalidPaymentAmount  = "INVALID_PAYMENT_AMOUNT"
	ErrCodeInitialPaymentExceeds = "INITIAL_PAYMENT_EXCEEDS_REQUIRED"
	ErrCodeProposalNotFound      = "PROPOSAL_NOT_FOUND"
	ErrCodeInvalidMonthKey       = "INVALID_MONTH_KEY"
	ErrCodeInvalidPaymentType    = "INVALID_PAYMENT_TYPE"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapRoomNotFound(roomNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomNotFound,
		fmt.Sprintf("Room %s not found", roomNumber),
		ErrRoomNotFound,
	)
}

func WrapRoomAlreadyExists(roomNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomAlreadyExists,
		fmt.Sprintf("Room %s already exists", roomNumber),
		ErrRoomAlreadyExists,
	)
}

func WrapRoomFull(roomNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomFull,
		fmt.Sprintf("Room %s is at full capacity, cannot add a new guest", roomNumber),
		ErrRoomFull,
	)
}

func WrapRoomOccupied(roomNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeRoomOccupied,
		fmt.Sprintf("Room %s still has occupants and cannot be deleted", roomNumber),
		ErrRoomOccupied,
	)
}

func WrapGuestNotFound(userID int, roomNumber string) *BusinessError {
	return NewBusinessError(
		ErrCodeGuestNotFound,
		fmt.Sprintf("Guest %d not found in room %s", userID, roomNumber),
		ErrGuestNotFound,
	)
}

func WrapInvalidPaymentAmount() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentAmount,
		"Payment amount must be greater than 0",
		ErrInvalidPaymentAmount,
	)
}

func WrapInitialPaymentExceeds(paymentType, required string) *BusinessError {
	return NewBusinessError(
		ErrCodeInitialPaymentExceeds,
		fmt.Sprintf("Initial %s payment cannot exceed required amount (%s)", paymentType, required),
		ErrInitialPaymentExceeds,
	)
}

func WrapProposalNotFound(token string) *BusinessError {
	return NewBusinessError(
		ErrCodeProposalNotFound,
		fmt.Sprintf("Payment proposal %s not found or expired", token),
		ErrProposalNotFound,
	)
}

func WrapInvalidMonthKey(month string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidMonthKey,
		fmt.Sprintf("Invalid month %q, expected YYYY-MM", month),
		ErrInvalidMonthKey,
	)
}

func WrapInvalidPaymentType(paymentType string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentType,
		fmt.Sprintf("Unknown payment type %q", paymentType),
		ErrInvalidPaymentType,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}
