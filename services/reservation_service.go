package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"jvracle/constants"
	apperrors "jvracle/errors"
	"jvracle/models"
	"jvracle/services/logger"
	"jvracle/services/notification"
	"jvracle/storage"
)

// ReservationService là state machine cho vòng đời reservation:
// confirmed → checked-in → checked-out, confirmed → cancelled | no-show.
// Mỗi reservation là một critical section riêng; mọi thao tác nhiều bước
// hoặc hoàn tất trọn vẹn hoặc không để lại thay đổi nào.
type ReservationService struct {
	mu           sync.RWMutex
	reservations map[string]*resEntry
	seq          int

	registry  *RoomRegistry
	ledger    *LedgerService
	store     storage.Store
	clock     Clock
	log       logger.Logger
	notifier  notification.Service
	noShowFee int64 // phí no-show theo đơn vị nhỏ nhất, 0 là không thu
}

type resEntry struct {
	mu  sync.Mutex
	res models.Reservation
}

// ReservationServiceOptions chứa các phụ thuộc của ReservationService
type ReservationServiceOptions struct {
	Registry  *RoomRegistry
	Ledger    *LedgerService
	Store     storage.Store
	Clock     Clock
	Logger    logger.Logger
	Notifier  notification.Service
	NoShowFee int64
}

// NewReservationService tạo instance mới của ReservationService
func NewReservationService(opts ReservationServiceOptions) *ReservationService {
	return &ReservationService{
		reservations: make(map[string]*resEntry),
		registry:     opts.Registry,
		ledger:       opts.Ledger,
		store:        opts.Store,
		clock:        opts.Clock,
		log:          opts.Logger,
		notifier:     opts.Notifier,
		noShowFee:    opts.NoShowFee,
	}
}

// CreateReservation tạo reservation mới ở trạng thái confirmed
func (s *ReservationService) CreateReservation(res models.Reservation) (*models.Reservation, error) {
	if err := res.ValidateStayWindow(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), err)
	}
	if res.RoomType == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "room type is required", nil)
	}
	if res.RateAmount <= 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "rate must be positive", nil)
	}
	if res.Guests < 1 {
		res.Guests = 1
	}
	res.Status = constants.ReservationStatusConfirmed
	res.RoomNumber = nil

	s.mu.Lock()
	if res.ConfirmationNumber == "" {
		s.seq++
		res.ConfirmationNumber = fmt.Sprintf("JV%d%03d", s.clock.Now().Year(), s.seq)
	}
	if _, exists := s.reservations[res.ConfirmationNumber]; exists {
		s.mu.Unlock()
		return nil, apperrors.NewAppError(apperrors.ErrCodeValidation,
			fmt.Sprintf("reservation %s already exists", res.ConfirmationNumber), nil)
	}
	s.reservations[res.ConfirmationNumber] = &resEntry{res: res}
	s.mu.Unlock()

	s.persist(&res)
	s.log.Info("Đã tạo reservation %s (%s, %s → %s)", res.ConfirmationNumber, res.RoomType,
		res.CheckInDate.Format("2006-01-02"), res.CheckOutDate.Format("2006-01-02"))
	out := res
	return &out, nil
}

// Get trả về bản sao reservation theo số xác nhận
func (s *ReservationService) Get(confirmationNumber string) (*models.Reservation, error) {
	entry := s.entry(confirmationNumber)
	if entry == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("reservation %s not found", confirmationNumber), apperrors.ErrReservationNotFound)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	res := entry.res
	return &res, nil
}

// List trả về bản sao toàn bộ reservation
func (s *ReservationService) List() []models.Reservation {
	s.mu.RLock()
	entries := make([]*resEntry, 0, len(s.reservations))
	for _, e := range s.reservations {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]models.Reservation, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.res)
		e.mu.Unlock()
	}
	return out
}

// ResolveStatus implement ReservationResolver cho LedgerService
func (s *ReservationService) ResolveStatus(confirmationNumber string) (string, error) {
	res, err := s.Get(confirmationNumber)
	if err != nil {
		return "", err
	}
	return res.Status, nil
}

// CheckIn nhận phòng cho reservation đang confirmed. Phòng được gán cho
// trọn khoảng lưu trú; hai check-in tranh nhau cùng phòng thì chỉ một bên
// thắng, bên kia nhận ROOM_UNAVAILABLE và reservation giữ nguyên.
func (s *ReservationService) CheckIn(confirmationNumber, roomNumber string) error {
	entry := s.entry(confirmationNumber)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("reservation %s not found", confirmationNumber), apperrors.ErrReservationNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.res.Status != constants.ReservationStatusConfirmed {
		return apperrors.NewInvalidTransition("check in", confirmationNumber, entry.res.Status)
	}

	if err := s.registry.Assign(s, roomNumber, confirmationNumber, entry.res.CheckInDate, entry.res.CheckOutDate); err != nil {
		return err
	}

	if _, err := s.ledger.ensurePrimaryFolio(confirmationNumber); err != nil {
		// Trả phòng lại để không còn hiệu ứng nào của lần check-in hỏng
		if relErr := s.registry.Release(s, roomNumber); relErr != nil {
			s.log.Error("Không trả lại được phòng %s sau khi mở folio thất bại: %v", roomNumber, relErr)
		}
		return err
	}

	state := models.GetReservationState(entry.res.Status)
	if err := state.CheckIn(&entry.res, roomNumber); err != nil {
		if relErr := s.registry.Release(s, roomNumber); relErr != nil {
			s.log.Error("Không trả lại được phòng %s sau transition thất bại: %v", roomNumber, relErr)
		}
		return err
	}

	s.persist(&entry.res)
	s.log.Info("Reservation %s đã check-in phòng %s", confirmationNumber, roomNumber)
	return nil
}

// CheckOut trả phòng cho reservation đang checked-in. Mọi folio của
// reservation phải có số dư 0; lỗi OUTSTANDING_BALANCE nêu rõ các folio
// còn nợ và không thay đổi gì.
func (s *ReservationService) CheckOut(confirmationNumber string) error {
	entry := s.entry(confirmationNumber)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("reservation %s not found", confirmationNumber), apperrors.ErrReservationNotFound)
	}

	entry.mu.Lock()

	if entry.res.Status != constants.ReservationStatusCheckedIn {
		status := entry.res.Status
		entry.mu.Unlock()
		return apperrors.NewInvalidTransition("check out", confirmationNumber, status)
	}

	folios := s.ledger.FoliosFor(confirmationNumber)
	var outstanding []string
	for i := range folios {
		if folios[i].Balance != 0 {
			outstanding = append(outstanding, folios[i].Number)
		}
	}
	if len(outstanding) > 0 {
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeOutstandingBalance,
			fmt.Sprintf("reservation %s has outstanding balance on folio(s) %s",
				confirmationNumber, strings.Join(outstanding, ", ")), nil)
	}

	// Đóng folio trước: closeFolio tự kiểm tra lại số dư nên một bút toán
	// chen ngang giữa hai bước sẽ làm check-out thất bại trọn vẹn
	var closed []string
	for i := range folios {
		if folios[i].IsClosed() {
			continue
		}
		if err := s.ledger.closeFolio(folios[i].ID); err != nil {
			for _, id := range closed {
				s.ledger.reopenFolio(id)
			}
			entry.mu.Unlock()
			return err
		}
		closed = append(closed, folios[i].ID)
	}

	roomNumber := ""
	if entry.res.RoomNumber != nil {
		roomNumber = *entry.res.RoomNumber
	}

	state := models.GetReservationState(entry.res.Status)
	if err := state.CheckOut(&entry.res); err != nil {
		for _, id := range closed {
			s.ledger.reopenFolio(id)
		}
		entry.mu.Unlock()
		return err
	}

	if roomNumber != "" {
		if err := s.registry.Release(s, roomNumber); err != nil {
			entry.res.Status = constants.ReservationStatusCheckedIn
			entry.res.RoomNumber = &roomNumber
			for _, id := range closed {
				s.ledger.reopenFolio(id)
			}
			entry.mu.Unlock()
			return err
		}
	}

	s.persist(&entry.res)
	entry.mu.Unlock()

	s.notify(notification.NewCheckOutMessage(confirmationNumber, roomNumber).Build())
	s.log.Info("Reservation %s đã check-out, phòng %s chuyển sang dọn", confirmationNumber, roomNumber)
	return nil
}

// Cancel hủy reservation đang confirmed, chỉ ghi lại lý do,
// không ảnh hưởng phòng hay folio
func (s *ReservationService) Cancel(confirmationNumber, reason string) error {
	entry := s.entry(confirmationNumber)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("reservation %s not found", confirmationNumber), apperrors.ErrReservationNotFound)
	}

	entry.mu.Lock()
	state := models.GetReservationState(entry.res.Status)
	if err := state.Cancel(&entry.res, reason); err != nil {
		entry.mu.Unlock()
		return err
	}
	s.persist(&entry.res)
	entry.mu.Unlock()

	s.notify(notification.NewCancellationMessage(confirmationNumber, reason).Build())
	s.log.Info("Reservation %s đã hủy: %s", confirmationNumber, reason)
	return nil
}

// MarkNoShow đánh dấu no-show khi ngày check-in đã qua hẳn mà khách
// không đến; thu phí no-show nếu có cấu hình
func (s *ReservationService) MarkNoShow(confirmationNumber string) error {
	entry := s.entry(confirmationNumber)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("reservation %s not found", confirmationNumber), apperrors.ErrReservationNotFound)
	}

	entry.mu.Lock()

	if entry.res.Status != constants.ReservationStatusConfirmed {
		status := entry.res.Status
		entry.mu.Unlock()
		return apperrors.NewInvalidTransition("mark no-show", confirmationNumber, status)
	}
	if s.clock.Now().Before(endOfDay(entry.res.CheckInDate)) {
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition,
			fmt.Sprintf("cannot mark reservation %s no-show before its check-in date has elapsed", confirmationNumber), nil)
	}

	state := models.GetReservationState(entry.res.Status)
	if err := state.MarkNoShow(&entry.res); err != nil {
		entry.mu.Unlock()
		return err
	}

	if s.noShowFee > 0 {
		folio, err := s.ledger.ensurePrimaryFolio(confirmationNumber)
		if err != nil {
			s.log.Error("Không mở được folio thu phí no-show cho %s: %v", confirmationNumber, err)
		} else if _, _, err := s.ledger.PostAs(folio.ID, s.noShowFee, constants.CategoryService,
			"No-show fee", "", "SYSTEM"); err != nil {
			s.log.Error("Không ghi được phí no-show cho %s: %v", confirmationNumber, err)
		}
	}

	s.persist(&entry.res)
	entry.mu.Unlock()

	s.notify(notification.NewNoShowMessage(confirmationNumber).Build())
	s.log.Info("Reservation %s được đánh dấu no-show", confirmationNumber)
	return nil
}

// MoveRoom chuyển khách đang lưu trú sang phòng khác: gán phòng mới
// trước rồi mới trả phòng cũ, nên phòng mới không trống thì không có
// thay đổi nào xảy ra
func (s *ReservationService) MoveRoom(confirmationNumber, newRoomNumber string) error {
	entry := s.entry(confirmationNumber)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("reservation %s not found", confirmationNumber), apperrors.ErrReservationNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.res.Status != constants.ReservationStatusCheckedIn || entry.res.RoomNumber == nil {
		return apperrors.NewInvalidTransition("move room", confirmationNumber, entry.res.Status)
	}
	oldRoomNumber := *entry.res.RoomNumber
	if oldRoomNumber == newRoomNumber {
		return apperrors.NewAppError(apperrors.ErrCodeValidation,
			fmt.Sprintf("reservation %s is already in room %s", confirmationNumber, newRoomNumber), nil)
	}

	if err := s.registry.Assign(s, newRoomNumber, confirmationNumber, entry.res.CheckInDate, entry.res.CheckOutDate); err != nil {
		return err
	}
	if err := s.registry.Release(s, oldRoomNumber); err != nil {
		if relErr := s.registry.Release(s, newRoomNumber); relErr != nil {
			s.log.Error("Không trả lại được phòng %s sau move-room thất bại: %v", newRoomNumber, relErr)
		}
		return err
	}

	entry.res.RoomNumber = &newRoomNumber
	s.persist(&entry.res)
	s.log.Info("Reservation %s chuyển từ phòng %s sang phòng %s", confirmationNumber, oldRoomNumber, newRoomNumber)
	return nil
}

// Restore nạp lại reservation từ store lúc khởi động và dựng lại bảng
// gán phòng cho các khách đang lưu trú
func (s *ReservationService) Restore() error {
	reservations, err := s.store.LoadReservations()
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range reservations {
		res := reservations[i]
		s.reservations[res.ConfirmationNumber] = &resEntry{res: res}
		var year, n int
		if _, err := fmt.Sscanf(res.ConfirmationNumber, "JV%4d%03d", &year, &n); err == nil && n > s.seq {
			s.seq = n
		}
	}
	s.mu.Unlock()

	for i := range reservations {
		res := reservations[i]
		if res.Status == constants.ReservationStatusCheckedIn && res.RoomNumber != nil {
			s.registry.restoreAssignment(*res.RoomNumber, res.ConfirmationNumber, res.CheckInDate, res.CheckOutDate)
		}
	}
	return nil
}

func (s *ReservationService) entry(confirmationNumber string) *resEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reservations[confirmationNumber]
}

func (s *ReservationService) persist(res *models.Reservation) {
	if err := s.store.SaveReservation(res); err != nil {
		s.log.Error("Không lưu được reservation %s vào store: %v", res.ConfirmationNumber, err)
	}
}

func (s *ReservationService) notify(message string) {
	if s.notifier == nil {
		return
	}
	// Thông báo chạy sau khi đã commit, lỗi chỉ ghi log
	if err := s.notifier.SendMessage(message); err != nil {
		s.log.Error("Không gửi được thông báo: %v", err)
	}
}

// endOfDay trả về thời điểm đầu ngày kế tiếp của d
func endOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location()).AddDate(0, 0, 1)
}
