package controllers

import (
	"github.com/gin-gonic/gin"

	"jvracle/dto"
	"jvracle/models"
	"jvracle/response"
	"jvracle/services"
)

// GuestController xử lý request hồ sơ khách
type GuestController struct {
	guests *services.GuestService
}

// NewGuestController tạo instance mới của GuestController
func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{guests: guests}
}

// CreateGuest tạo hồ sơ khách mới
func (ctl *GuestController) CreateGuest(c *gin.Context) {
	var req dto.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	guest, err := ctl.guests.CreateGuest(models.Guest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		VIP:       req.VIP,
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, guest)
}

// GetGuest lấy hồ sơ khách theo id
func (ctl *GuestController) GetGuest(c *gin.Context) {
	guest, err := ctl.guests.GetGuest(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, guest)
}

// SearchGuests tìm khách theo tên gần đúng
func (ctl *GuestController) SearchGuests(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Thiếu từ khóa tìm kiếm")
		return
	}
	response.Success(c, ctl.guests.SearchGuests(query, parseLimit(c)))
}
