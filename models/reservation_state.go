package models

import (
	"jvracle/constants"
	"jvracle/errors"
)

// ReservationState định nghĩa interface cho các trạng thái reservation.
// Mọi chuyển trạng thái không hợp lệ trả về lỗi INVALID_TRANSITION kèm
// hành động và trạng thái hiện tại; reservation không bị thay đổi.
type ReservationState interface {
	CheckIn(res *Reservation, roomNumber string) error
	CheckOut(res *Reservation) error
	Cancel(res *Reservation, reason string) error
	MarkNoShow(res *Reservation) error
}

// ConfirmedState trạng thái đã xác nhận, chờ khách đến
type ConfirmedState struct{}

func (s *ConfirmedState) CheckIn(res *Reservation, roomNumber string) error {
	res.Status = constants.ReservationStatusCheckedIn
	res.RoomNumber = &roomNumber
	return nil
}

func (s *ConfirmedState) CheckOut(res *Reservation) error {
	return errors.NewInvalidTransition("check out", res.ConfirmationNumber, res.Status)
}

func (s *ConfirmedState) Cancel(res *Reservation, reason string) error {
	res.Status = constants.ReservationStatusCancelled
	res.CancelReason = reason
	return nil
}

func (s *ConfirmedState) MarkNoShow(res *Reservation) error {
	res.Status = constants.ReservationStatusNoShow
	return nil
}

// CheckedInState trạng thái khách đang lưu trú
type CheckedInState struct{}

func (s *CheckedInState) CheckIn(res *Reservation, roomNumber string) error {
	return errors.NewInvalidTransition("check in", res.ConfirmationNumber, res.Status)
}

func (s *CheckedInState) CheckOut(res *Reservation) error {
	res.Status = constants.ReservationStatusCheckedOut
	res.RoomNumber = nil
	return nil
}

func (s *CheckedInState) Cancel(res *Reservation, reason string) error {
	return errors.NewInvalidTransition("cancel", res.ConfirmationNumber, res.Status)
}

func (s *CheckedInState) MarkNoShow(res *Reservation) error {
	return errors.NewInvalidTransition("mark no-show", res.ConfirmationNumber, res.Status)
}

// TerminalState dùng chung cho checked-out, cancelled và no-show:
// không còn chuyển trạng thái nào được phép
type TerminalState struct{}

func (s *TerminalState) CheckIn(res *Reservation, roomNumber string) error {
	return errors.NewInvalidTransition("check in", res.ConfirmationNumber, res.Status)
}

func (s *TerminalState) CheckOut(res *Reservation) error {
	return errors.NewInvalidTransition("check out", res.ConfirmationNumber, res.Status)
}

func (s *TerminalState) Cancel(res *Reservation, reason string) error {
	return errors.NewInvalidTransition("cancel", res.ConfirmationNumber, res.Status)
}

func (s *TerminalState) MarkNoShow(res *Reservation) error {
	return errors.NewInvalidTransition("mark no-show", res.ConfirmationNumber, res.Status)
}

// GetReservationState trả về state tương ứng với trạng thái reservation
func GetReservationState(status string) ReservationState {
	switch status {
	case constants.ReservationStatusConfirmed:
		return &ConfirmedState{}
	case constants.ReservationStatusCheckedIn:
		return &CheckedInState{}
	default:
		return &TerminalState{}
	}
}
