package dto

type AddRoomRequest struct {
	Number       string `json:"number" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Floor        int    `json:"floor"`
	BedType      string `json:"bedType"`
	MaxOccupancy int    `json:"maxOccupancy"`
}

type SetRoomStatusRequest struct {
	Number string `json:"number" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type CompleteTaskRequest struct {
	TaskID string `json:"taskId" binding:"required"`
}
