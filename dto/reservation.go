package dto

type CreateReservationRequest struct {
	GuestID      string `json:"guestId"`
	CheckInDate  string `json:"checkInDate" binding:"required"`  // yyyy-mm-dd
	CheckOutDate string `json:"checkOutDate" binding:"required"` // yyyy-mm-dd
	RoomType     string `json:"roomType" binding:"required"`
	RateAmount   int64  `json:"rateAmount" binding:"required"` // giá mỗi đêm, đơn vị nhỏ nhất
	Guests       int    `json:"guests"`
	Source       string `json:"source"`
}

type CheckInRequest struct {
	ConfirmationNumber string `json:"confirmationNumber" binding:"required"`
	RoomNumber         string `json:"roomNumber" binding:"required"`
}

type CheckOutRequest struct {
	ConfirmationNumber string `json:"confirmationNumber" binding:"required"`
}

type CancelRequest struct {
	ConfirmationNumber string `json:"confirmationNumber" binding:"required"`
	Reason             string `json:"reason"`
}

type NoShowRequest struct {
	ConfirmationNumber string `json:"confirmationNumber" binding:"required"`
}

type MoveRoomRequest struct {
	ConfirmationNumber string `json:"confirmationNumber" binding:"required"`
	NewRoomNumber      string `json:"newRoomNumber" binding:"required"`
}
