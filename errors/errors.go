package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Lifecycle errors
	ErrCodeInvalidTransition       ErrorCode = "INVALID_TRANSITION"
	ErrCodeInvalidReservationState ErrorCode = "INVALID_RESERVATION_STATE"
	ErrCodeRoomUnavailable         ErrorCode = "ROOM_UNAVAILABLE"

	// Ledger errors
	ErrCodeFolioClosed         ErrorCode = "FOLIO_CLOSED"
	ErrCodeAlreadyClosed       ErrorCode = "ALREADY_CLOSED"
	ErrCodeNonZeroBalance      ErrorCode = "NON_ZERO_BALANCE"
	ErrCodeOutstandingBalance  ErrorCode = "OUTSTANDING_BALANCE"
	ErrCodeTransactionNotFound ErrorCode = "TRANSACTION_NOT_FOUND"
	ErrCodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidCategory     ErrorCode = "INVALID_CATEGORY"

	// Access errors
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	ErrCodeNotFound  ErrorCode = "NOT_FOUND"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidTransition tạo lỗi chuyển trạng thái không hợp lệ, kèm theo
// hành động được yêu cầu và trạng thái hiện tại của reservation
func NewInvalidTransition(action, confirmationNumber, currentStatus string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot %s reservation %s in status %q", action, confirmationNumber, currentStatus),
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra error có mang mã lỗi tương ứng không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationTerminal = errors.New("reservation already in a terminal state")

	// Room errors
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAvailable = errors.New("room not available")
	ErrRoomOccupied     = errors.New("room is occupied")

	// Folio errors
	ErrFolioNotFound       = errors.New("folio not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrZeroAmount          = errors.New("zero-amount posting is not allowed")

	// Guest errors
	ErrGuestNotFound = errors.New("guest not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
