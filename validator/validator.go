package validator

import (
	"fmt"
	"strings"
	"time"

	"jvracle/builders"
	"jvracle/constants"
	"jvracle/dto"
	"jvracle/errors"
	"jvracle/models"
)

const dateLayout = "2006-01-02"

// ParseDate đọc ngày yyyy-mm-dd, trả về INVALID_FORMAT nếu sai
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("Field %s must be a yyyy-mm-dd date", field), err)
	}
	return t, nil
}

// ValidateReservationRequest kiểm tra và dựng reservation từ request
func ValidateReservationRequest(req dto.CreateReservationRequest) (*models.Reservation, error) {
	checkIn, err := ParseDate("checkInDate", req.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseDate("checkOutDate", req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if req.RateAmount <= 0 {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Rate amount must be positive", nil)
	}
	guests := req.Guests
	if guests <= 0 {
		guests = 1
	}
	res := builders.NewReservationBuilder().
		WithGuest(req.GuestID).
		WithStay(checkIn, checkOut).
		WithRoomType(req.RoomType).
		WithRate(req.RateAmount).
		WithGuests(guests).
		WithSource(req.Source).
		Build()
	if err := res.ValidateStayWindow(); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, err.Error(), err)
	}
	return &res, nil
}

// ValidateRoomRequest kiểm tra request thêm phòng
func ValidateRoomRequest(req dto.AddRoomRequest) (*models.Room, error) {
	if strings.TrimSpace(req.Number) == "" {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "Room number is required", nil)
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "Room type is required", nil)
	}
	maxOcc := req.MaxOccupancy
	if maxOcc <= 0 {
		maxOcc = 2
	}
	room := &models.Room{
		Number:       strings.TrimSpace(req.Number),
		Type:         req.Type,
		Floor:        req.Floor,
		BedType:      req.BedType,
		MaxOccupancy: maxOcc,
		Status:       constants.RoomStatusClean,
	}
	return room, nil
}

// ValidateRoomStatus kiểm tra trạng thái phòng hợp lệ
func ValidateRoomStatus(status string) error {
	switch status {
	case constants.RoomStatusClean, constants.RoomStatusDirty, constants.RoomStatusOccupied,
		constants.RoomStatusMaintenance, constants.RoomStatusOutOfOrder:
		return nil
	}
	return errors.NewAppError(errors.ErrCodeValidation,
		fmt.Sprintf("Unknown room status %q", status), nil)
}
