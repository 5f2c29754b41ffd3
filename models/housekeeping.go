package models

import "time"

// HousekeepingTask được tạo khi phòng chuyển sang dirty lúc check-out;
// hoàn thành task sẽ đưa phòng về clean
type HousekeepingTask struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	RoomNumber  string     `json:"roomNumber" gorm:"index"`
	TaskType    string     `json:"taskType"`
	Status      string     `json:"status" gorm:"default:pending"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
