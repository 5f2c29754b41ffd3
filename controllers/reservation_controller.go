package controllers

import (
	"github.com/gin-gonic/gin"

	"jvracle/dto"
	"jvracle/errors"
	"jvracle/middleware"
	"jvracle/response"
	"jvracle/services"
	"jvracle/validator"
)

// ReservationController xử lý request vòng đời reservation
type ReservationController struct {
	reservations *services.ReservationService
	coordinator  *services.FolioCoordinator
}

// NewReservationController tạo instance mới của ReservationController
func NewReservationController(reservations *services.ReservationService, coordinator *services.FolioCoordinator) *ReservationController {
	return &ReservationController{
		reservations: reservations,
		coordinator:  coordinator,
	}
}

// CreateReservation tạo reservation mới
func (ctl *ReservationController) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	res, err := validator.ValidateReservationRequest(req)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := ctl.reservations.CreateReservation(*res)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, created)
}

// GetReservation lấy reservation theo số xác nhận
func (ctl *ReservationController) GetReservation(c *gin.Context) {
	res, err := ctl.reservations.Get(c.Param("confirmationNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, res)
}

// ListReservations lấy toàn bộ reservation
func (ctl *ReservationController) ListReservations(c *gin.Context) {
	response.Success(c, ctl.reservations.List())
}

// CheckIn nhận phòng cho reservation
func (ctl *ReservationController) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctl.reservations.CheckIn(req.ConfirmationNumber, req.RoomNumber); err != nil {
		respondError(c, err)
		return
	}
	res, err := ctl.reservations.Get(req.ConfirmationNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, res)
}

// CheckOut trả phòng cho reservation, mọi folio phải có số dư 0
func (ctl *ReservationController) CheckOut(c *gin.Context) {
	var req dto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctl.coordinator.RequestCheckOut(req.ConfirmationNumber); err != nil {
		respondError(c, err)
		return
	}
	res, err := ctl.reservations.Get(req.ConfirmationNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, res)
}

// Cancel hủy reservation đang confirmed
func (ctl *ReservationController) Cancel(c *gin.Context) {
	var req dto.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctl.reservations.Cancel(req.ConfirmationNumber, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkNoShow đánh dấu reservation no-show
func (ctl *ReservationController) MarkNoShow(c *gin.Context) {
	var req dto.NoShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctl.reservations.MarkNoShow(req.ConfirmationNumber); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}

// MoveRoom chuyển khách đang lưu trú sang phòng khác
func (ctl *ReservationController) MoveRoom(c *gin.Context) {
	var req dto.MoveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctl.reservations.MoveRoom(req.ConfirmationNumber, req.NewRoomNumber); err != nil {
		respondError(c, err)
		return
	}
	res, err := ctl.reservations.Get(req.ConfirmationNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, res)
}

// respondError trả lỗi về client: AppError được ánh xạ theo mã, còn lại là lỗi server
func respondError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		middleware.RespondAppError(c, appErr)
		return
	}
	response.ServerError(c)
}
