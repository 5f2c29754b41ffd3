package services

import (
	"fmt"

	"jvracle/constants"
	apperrors "jvracle/errors"
	"jvracle/models"
	"jvracle/services/logger"
)

// FolioCoordinator là facade duy nhất cho các thao tác tài chính và
// lifecycle từ bên ngoài: luôn đối chiếu trạng thái reservation trước
// rồi mới ủy quyền cho ledger, nên caller không bỏ qua được validation.
type FolioCoordinator struct {
	ledger       *LedgerService
	reservations *ReservationService
	log          logger.Logger
}

// NewFolioCoordinator tạo instance mới của FolioCoordinator
func NewFolioCoordinator(ledger *LedgerService, reservations *ReservationService, log logger.Logger) *FolioCoordinator {
	return &FolioCoordinator{
		ledger:       ledger,
		reservations: reservations,
		log:          log,
	}
}

var chargeCategories = map[string]bool{
	constants.CategoryRoomCharge: true,
	constants.CategoryTax:        true,
	constants.CategoryService:    true,
}

var creditCategories = map[string]bool{
	constants.CategoryPayment:    true,
	constants.CategoryAdjustment: true,
	constants.CategoryRefund:     true,
}

// OpenFolio mở folio phụ (incidental) cho reservation còn hiệu lực
func (c *FolioCoordinator) OpenFolio(confirmationNumber string) (*models.Folio, error) {
	return c.ledger.OpenFolio(confirmationNumber)
}

// PostCharge ghi một khoản phí (số dương) lên folio. Reservation phải
// đang confirmed hoặc checked-in; phí trên reservation đã hủy/kết thúc
// bị từ chối.
func (c *FolioCoordinator) PostCharge(folioID string, amount int64, category, description, externalRef, postedBy string) (*models.Transaction, int64, error) {
	if amount <= 0 {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount,
			fmt.Sprintf("charge amount must be positive, got %d", amount), nil)
	}
	if !chargeCategories[category] {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidCategory,
			fmt.Sprintf("category %q is not a charge category", category), nil)
	}

	status, err := c.resolveFolioReservation(folioID)
	if err != nil {
		return nil, 0, err
	}
	if status != constants.ReservationStatusConfirmed && status != constants.ReservationStatusCheckedIn {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidReservationState,
			fmt.Sprintf("cannot post a charge while the reservation is %q", status), nil)
	}

	return c.ledger.PostAs(folioID, amount, category, description, externalRef, postedBy)
}

// PostPayment ghi một khoản thanh toán/ghi có (số âm) lên folio. Cho
// phép cả khi reservation đã kết thúc để tất toán phí no-show hay phí
// phát sinh, miễn là folio còn mở.
func (c *FolioCoordinator) PostPayment(folioID string, amount int64, category, description, externalRef, postedBy string) (*models.Transaction, int64, error) {
	if amount >= 0 {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount,
			fmt.Sprintf("payment amount must be negative, got %d", amount), nil)
	}
	if category == "" {
		category = constants.CategoryPayment
	}
	if !creditCategories[category] {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidCategory,
			fmt.Sprintf("category %q is not a credit category", category), nil)
	}

	if _, err := c.resolveFolioReservation(folioID); err != nil {
		return nil, 0, err
	}
	return c.ledger.PostAs(folioID, amount, category, description, externalRef, postedBy)
}

// ReverseTransaction ghi bút toán đảo cho một bút toán đã có
func (c *FolioCoordinator) ReverseTransaction(txnID string) (*models.Transaction, error) {
	return c.ledger.Reverse(txnID)
}

// RequestCheckOut yêu cầu check-out: toàn bộ kiểm tra trạng thái và
// số dư nằm trong state machine, lỗi cụ thể nhất được trả thẳng về caller
func (c *FolioCoordinator) RequestCheckOut(confirmationNumber string) error {
	return c.reservations.CheckOut(confirmationNumber)
}

func (c *FolioCoordinator) resolveFolioReservation(folioID string) (string, error) {
	folio, err := c.ledger.GetFolio(folioID)
	if err != nil {
		return "", err
	}
	return c.reservations.ResolveStatus(folio.ReservationID)
}
