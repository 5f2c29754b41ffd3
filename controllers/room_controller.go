package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"jvracle/constants"
	"jvracle/dto"
	"jvracle/models"
	"jvracle/response"
	"jvracle/services"
	"jvracle/types"
	"jvracle/validator"
)

// RoomController xử lý request phòng, housekeeping và room board
type RoomController struct {
	registry     *services.RoomRegistry
	board        *services.BoardCache
	reservations *services.ReservationService
	guests       *services.GuestService
}

// NewRoomController tạo instance mới của RoomController
func NewRoomController(registry *services.RoomRegistry, board *services.BoardCache,
	reservations *services.ReservationService, guests *services.GuestService) *RoomController {
	return &RoomController{
		registry:     registry,
		board:        board,
		reservations: reservations,
		guests:       guests,
	}
}

// AddRoom thêm phòng vào registry
func (ctl *RoomController) AddRoom(c *gin.Context) {
	var req dto.AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	room, err := validator.ValidateRoomRequest(req)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.registry.AddRoom(*room); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, room)
}

// GetRoom lấy thông tin phòng theo số phòng
func (ctl *RoomController) GetRoom(c *gin.Context) {
	room, err := ctl.registry.GetRoom(c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, room)
}

// ListRooms lấy toàn bộ phòng
func (ctl *RoomController) ListRooms(c *gin.Context) {
	response.Success(c, ctl.registry.Snapshot())
}

// SetStatus đổi trạng thái phòng cho housekeeping/bảo trì
func (ctl *RoomController) SetStatus(c *gin.Context) {
	var req dto.SetRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := validator.ValidateRoomStatus(req.Status); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.registry.SetStatus(req.Number, req.Status); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// Retire ngừng khai thác phòng
func (ctl *RoomController) Retire(c *gin.Context) {
	if err := ctl.registry.Retire(c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// FindAvailable tìm phòng trống theo loại và khoảng ngày
func (ctl *RoomController) FindAvailable(c *gin.Context) {
	roomType := c.Query("roomType")
	if roomType == "" {
		response.BadRequest(c, "Thiếu roomType")
		return
	}
	from, err := validator.ParseDate("from", c.Query("from"))
	if err != nil {
		respondError(c, err)
		return
	}
	to, err := validator.ParseDate("to", c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, ctl.registry.FindAvailable(roomType, from, to))
}

// RoomBoard trả về room rack cho lễ tân: trạng thái phòng kèm tên khách
// đang ở, đọc qua cache Redis
func (ctl *RoomController) RoomBoard(c *gin.Context) {
	rooms := ctl.board.RoomBoard(c.Request.Context())

	board := make([]types.BoardRoom, 0, len(rooms))
	for i := range rooms {
		row := types.BoardRoom{
			Number: rooms[i].Number,
			Type:   rooms[i].Type,
			Floor:  rooms[i].Floor,
			Status: rooms[i].Status,
		}
		if rooms[i].OccupantID != nil {
			row.ConfirmationNumber = *rooms[i].OccupantID
			if res, err := ctl.reservations.Get(*rooms[i].OccupantID); err == nil && res.GuestID != "" {
				if guest, err := ctl.guests.GetGuest(res.GuestID); err == nil {
					row.GuestName = guest.FullName()
				}
			}
		}
		board = append(board, row)
	}
	response.Success(c, board)
}

// ListTasks lấy danh sách task dọn phòng
func (ctl *RoomController) ListTasks(c *gin.Context) {
	tasks := ctl.registry.ListTasks()

	if c.Query("status") == constants.TaskStatusPending {
		pending := make([]models.HousekeepingTask, 0, len(tasks))
		for i := range tasks {
			if tasks[i].Status == constants.TaskStatusPending {
				pending = append(pending, tasks[i])
			}
		}
		tasks = pending
	}
	response.Success(c, tasks)
}

// CompleteTask hoàn thành task dọn phòng
func (ctl *RoomController) CompleteTask(c *gin.Context) {
	var req dto.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctl.registry.CompleteTask(req.TaskID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// parseLimit đọc query limit, mặc định 10
func parseLimit(c *gin.Context) int {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return limit
}
