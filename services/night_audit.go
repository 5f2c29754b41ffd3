package services

import (
	"fmt"
	"math"

	"jvracle/commands"
	"jvracle/constants"
	"jvracle/services/logger"
)

// NightAuditService chạy nghiệp vụ cuối ngày: ghi tiền phòng và thuế
// cho mọi khách đang lưu trú, và quét các reservation quá ngày check-in
// để đánh dấu no-show
type NightAuditService struct {
	reservations *ReservationService
	ledger       *LedgerService
	coordinator  *FolioCoordinator
	clock        Clock
	log          logger.Logger
	taxRate      float64 // thuế phòng, ví dụ 0.125
}

// NightAuditOptions chứa các phụ thuộc của NightAuditService
type NightAuditOptions struct {
	Reservations *ReservationService
	Ledger       *LedgerService
	Coordinator  *FolioCoordinator
	Clock        Clock
	Logger       logger.Logger
	TaxRate      float64
}

// NewNightAuditService tạo instance mới của NightAuditService
func NewNightAuditService(opts NightAuditOptions) *NightAuditService {
	return &NightAuditService{
		reservations: opts.Reservations,
		ledger:       opts.Ledger,
		coordinator:  opts.Coordinator,
		clock:        opts.Clock,
		log:          opts.Logger,
		taxRate:      opts.TaxRate,
	}
}

// RunNightAudit ghi tiền phòng mỗi đêm cộng thuế cho từng reservation
// đang checked-in. Làm tròn thuế thực hiện ở đây, trước khi ghi sổ;
// ledger không bao giờ tự làm tròn.
func (s *NightAuditService) RunNightAudit() error {
	var failed int
	for _, res := range s.reservations.List() {
		if res.Status != constants.ReservationStatusCheckedIn {
			continue
		}

		folio, err := s.ledger.ensurePrimaryFolio(res.ConfirmationNumber)
		if err != nil {
			s.log.Error("Night audit: không lấy được folio của %s: %v", res.ConfirmationNumber, err)
			failed++
			continue
		}

		roomNumber := ""
		if res.RoomNumber != nil {
			roomNumber = *res.RoomNumber
		}

		cmds := []commands.PostingCommand{
			commands.NewRoomChargeCommand(s.coordinator, folio.ID, res.RateAmount,
				constants.CategoryRoomCharge,
				fmt.Sprintf("Room Charge - %s (room %s)", res.RoomType, roomNumber), "NIGHT_AUDIT"),
		}
		if tax := roundHalfUp(res.RateAmount, s.taxRate); tax > 0 {
			cmds = append(cmds, commands.NewRoomChargeCommand(s.coordinator, folio.ID, tax,
				constants.CategoryTax,
				fmt.Sprintf("Room Tax %.1f%%", s.taxRate*100), "NIGHT_AUDIT"))
		}

		for _, cmd := range cmds {
			if err := cmd.Execute(); err != nil {
				s.log.Error("Night audit: lỗi ghi sổ cho %s: %v", res.ConfirmationNumber, err)
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("night audit finished with %d failed posting(s)", failed)
	}
	return nil
}

// SweepNoShows đánh dấu no-show các reservation confirmed đã qua hẳn
// ngày check-in mà khách không đến
func (s *NightAuditService) SweepNoShows() error {
	now := s.clock.Now()
	var failed int
	for _, res := range s.reservations.List() {
		if res.Status != constants.ReservationStatusConfirmed {
			continue
		}
		if now.Before(endOfDay(res.CheckInDate)) {
			continue
		}
		if err := s.reservations.MarkNoShow(res.ConfirmationNumber); err != nil {
			s.log.Error("No-show sweep: lỗi với reservation %s: %v", res.ConfirmationNumber, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("no-show sweep finished with %d failure(s)", failed)
	}
	return nil
}

// roundHalfUp nhân amount với rate và làm tròn nửa lên về đơn vị nhỏ nhất
func roundHalfUp(amount int64, rate float64) int64 {
	if rate <= 0 {
		return 0
	}
	return int64(math.Floor(float64(amount)*rate + 0.5))
}
