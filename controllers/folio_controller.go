package controllers

import (
	"github.com/gin-gonic/gin"

	"jvracle/dto"
	"jvracle/response"
	"jvracle/services"
)

// FolioController xử lý request sổ cái folio, mọi thao tác ghi
// đều đi qua FolioCoordinator
type FolioController struct {
	coordinator *services.FolioCoordinator
	ledger      *services.LedgerService
}

// NewFolioController tạo instance mới của FolioController
func NewFolioController(coordinator *services.FolioCoordinator, ledger *services.LedgerService) *FolioController {
	return &FolioController{
		coordinator: coordinator,
		ledger:      ledger,
	}
}

// OpenFolio mở folio phụ cho reservation còn hiệu lực
func (ctl *FolioController) OpenFolio(c *gin.Context) {
	var req dto.OpenFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	folio, err := ctl.coordinator.OpenFolio(req.ConfirmationNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, folio)
}

// GetFolio lấy folio theo id
func (ctl *FolioController) GetFolio(c *gin.Context) {
	folio, err := ctl.ledger.GetFolio(c.Param("folioId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, folio)
}

// GetHistory lấy danh sách bút toán theo đúng thứ tự ghi sổ
func (ctl *FolioController) GetHistory(c *gin.Context) {
	txns, err := ctl.ledger.History(c.Param("folioId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, txns)
}

// ListFolios lấy mọi folio của một reservation
func (ctl *FolioController) ListFolios(c *gin.Context) {
	response.Success(c, ctl.ledger.FoliosFor(c.Param("confirmationNumber")))
}

// PostCharge ghi một khoản phí lên folio
func (ctl *FolioController) PostCharge(c *gin.Context) {
	var req dto.PostChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	txn, balance, err := ctl.coordinator.PostCharge(req.FolioID, req.Amount, req.Category,
		req.Description, req.ExternalRef, req.PostedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, dto.PostingResponse{
		TransactionID: txn.ID,
		Sequence:      txn.Sequence,
		Balance:       balance,
	})
}

// PostPayment ghi một khoản thanh toán lên folio
func (ctl *FolioController) PostPayment(c *gin.Context) {
	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	txn, balance, err := ctl.coordinator.PostPayment(req.FolioID, req.Amount, req.Category,
		req.Description, req.ExternalRef, req.PostedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, dto.PostingResponse{
		TransactionID: txn.ID,
		Sequence:      txn.Sequence,
		Balance:       balance,
	})
}

// ReverseTransaction ghi bút toán đảo cho một bút toán đã có
func (ctl *FolioController) ReverseTransaction(c *gin.Context) {
	var req dto.ReverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	reversal, err := ctl.coordinator.ReverseTransaction(req.TransactionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, reversal)
}

// CloseFolio đóng folio khi số dư bằng 0 và reservation đã kết thúc
func (ctl *FolioController) CloseFolio(c *gin.Context) {
	var req dto.CloseFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}

	if err := ctl.ledger.CloseFolio(req.FolioID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}
