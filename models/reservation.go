package models

import (
	"fmt"
	"time"

	"jvracle/constants"
)

type Reservation struct {
	ConfirmationNumber string    `json:"confirmationNumber" gorm:"primaryKey"`
	GuestID            string    `json:"guestId" gorm:"index"`
	CheckInDate        time.Time `json:"checkInDate"`
	CheckOutDate       time.Time `json:"checkOutDate"`
	RoomType           string    `json:"roomType"`
	RoomNumber         *string   `json:"roomNumber,omitempty"` // gán khi check-in, chỉ đổi qua MoveRoom
	Status             string    `json:"status" gorm:"default:confirmed"`
	RateAmount         int64     `json:"rateAmount"` // giá mỗi đêm, đơn vị nhỏ nhất (cent)
	Guests             int       `json:"guests"`
	Source             string    `json:"source"`
	CancelReason       string    `json:"cancelReason,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ValidateStayWindow kiểm tra khoảng lưu trú: check-in phải trước check-out
func (r *Reservation) ValidateStayWindow() error {
	if r.CheckInDate.IsZero() || r.CheckOutDate.IsZero() {
		return fmt.Errorf("check-in and check-out dates are required")
	}
	if !r.CheckInDate.Before(r.CheckOutDate) {
		return fmt.Errorf("check-in date %s must be strictly before check-out date %s",
			r.CheckInDate.Format("2006-01-02"), r.CheckOutDate.Format("2006-01-02"))
	}
	return nil
}

// IsTerminal kiểm tra reservation đã ở trạng thái kết thúc chưa
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case constants.ReservationStatusCheckedOut,
		constants.ReservationStatusCancelled,
		constants.ReservationStatusNoShow:
		return true
	}
	return false
}

// Nights trả về số đêm lưu trú
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}
