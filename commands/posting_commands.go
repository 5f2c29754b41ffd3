package commands

import "jvracle/models"

// Poster là phần contract của Folio Coordinator mà các command cần
type Poster interface {
	PostCharge(folioID string, amount int64, category, description, externalRef, postedBy string) (*models.Transaction, int64, error)
}

// PostingCommand định nghĩa interface cho các command ghi sổ
type PostingCommand interface {
	Execute() error
}

// RoomChargeCommand command ghi tiền phòng cho một đêm lưu trú
type RoomChargeCommand struct {
	poster      Poster
	folioID     string
	amount      int64
	category    string
	description string
	postedBy    string
}

func NewRoomChargeCommand(poster Poster, folioID string, amount int64, category, description, postedBy string) *RoomChargeCommand {
	return &RoomChargeCommand{
		poster:      poster,
		folioID:     folioID,
		amount:      amount,
		category:    category,
		description: description,
		postedBy:    postedBy,
	}
}

func (c *RoomChargeCommand) Execute() error {
	_, _, err := c.poster.PostCharge(c.folioID, c.amount, c.category, c.description, "", c.postedBy)
	return err
}
