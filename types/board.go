package types

// BoardRoom là một dòng trên room rack của lễ tân: trạng thái phòng
// kèm thông tin khách đang ở (nếu có)
type BoardRoom struct {
	Number             string `json:"number"`
	Type               string `json:"type"`
	Floor              int    `json:"floor"`
	Status             string `json:"status"`
	ConfirmationNumber string `json:"confirmationNumber,omitempty"`
	GuestName          string `json:"guestName,omitempty"`
}
