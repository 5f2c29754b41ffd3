package builders

import (
	"time"

	"jvracle/models"
)

// ReservationBuilder giúp tạo reservation theo từng bước
type ReservationBuilder struct {
	res *models.Reservation
}

// NewReservationBuilder tạo instance mới của ReservationBuilder
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		res: &models.Reservation{},
	}
}

// WithGuest thêm thông tin khách
func (b *ReservationBuilder) WithGuest(guestID string) *ReservationBuilder {
	b.res.GuestID = guestID
	return b
}

// WithStay thêm khoảng lưu trú
func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.res.CheckInDate = checkIn
	b.res.CheckOutDate = checkOut
	return b
}

// WithRoomType thêm loại phòng yêu cầu
func (b *ReservationBuilder) WithRoomType(roomType string) *ReservationBuilder {
	b.res.RoomType = roomType
	return b
}

// WithRate thêm giá mỗi đêm (đơn vị nhỏ nhất)
func (b *ReservationBuilder) WithRate(rateAmount int64) *ReservationBuilder {
	b.res.RateAmount = rateAmount
	return b
}

// WithGuests thêm số khách
func (b *ReservationBuilder) WithGuests(guests int) *ReservationBuilder {
	b.res.Guests = guests
	return b
}

// WithSource thêm kênh đặt phòng
func (b *ReservationBuilder) WithSource(source string) *ReservationBuilder {
	b.res.Source = source
	return b
}

// Build tạo reservation hoàn chỉnh
func (b *ReservationBuilder) Build() models.Reservation {
	return *b.res
}
