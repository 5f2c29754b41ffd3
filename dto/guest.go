package dto

type CreateGuestRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	VIP       bool   `json:"vip"`
	Notes     string `json:"notes"`
}
