package models

import (
	"fmt"
	"time"

	"jvracle/constants"
)

type Room struct {
	Number       string     `json:"number" gorm:"primaryKey"`
	Type         string     `json:"type"`
	Floor        int        `json:"floor"`
	BedType      string     `json:"bedType"`
	MaxOccupancy int        `json:"maxOccupancy"`
	Status       string     `json:"status" gorm:"default:clean"`
	OccupantID   *string    `json:"occupantId,omitempty"` // số xác nhận của reservation đang ở
	LastCleaned  *time.Time `json:"lastCleaned,omitempty"`
	Retired      bool       `json:"retired"` // phòng ngừng khai thác, giữ lại vì folio cũ còn tham chiếu
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

var roomStatuses = map[string]bool{
	constants.RoomStatusClean:       true,
	constants.RoomStatusDirty:       true,
	constants.RoomStatusOccupied:    true,
	constants.RoomStatusMaintenance: true,
	constants.RoomStatusOutOfOrder:  true,
}

// ValidateStatus kiểm tra trạng thái phòng có hợp lệ không
func (r *Room) ValidateStatus() error {
	if !roomStatuses[r.Status] {
		return fmt.Errorf("invalid room status: %q", r.Status)
	}
	return nil
}

// ValidateOccupancy kiểm tra bất biến: occupied phải có occupant, trạng thái khác thì không
func (r *Room) ValidateOccupancy() error {
	if r.Status == constants.RoomStatusOccupied && r.OccupantID == nil {
		return fmt.Errorf("room %s is occupied without an occupant", r.Number)
	}
	if r.Status != constants.RoomStatusOccupied && r.OccupantID != nil {
		return fmt.Errorf("room %s has occupant %s but status %q", r.Number, *r.OccupantID, r.Status)
	}
	return nil
}
