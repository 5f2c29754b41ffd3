package models

import (
	"time"

	"jvracle/constants"
)

// Folio là tài khoản lưu trú của một reservation. Balance chỉ là tổng
// được cache lại, nguồn sự thật luôn là dãy Transaction theo thứ tự ghi sổ.
type Folio struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	Number        string        `json:"number" gorm:"uniqueIndex"` // FOL-2025-001
	ReservationID string        `json:"reservationId" gorm:"index"`
	Status        string        `json:"status" gorm:"default:open"`
	Balance       int64         `json:"balance"`
	TotalCharges  int64         `json:"totalCharges"`
	TotalPayments int64         `json:"totalPayments"`
	OpenedAt      time.Time     `json:"openedAt"`
	ClosedAt      *time.Time    `json:"closedAt,omitempty"`
	Transactions  []Transaction `json:"transactions,omitempty" gorm:"foreignKey:FolioID"`
}

// IsClosed kiểm tra folio đã đóng chưa
func (f *Folio) IsClosed() bool {
	return f.Status == constants.FolioStatusClosed
}
