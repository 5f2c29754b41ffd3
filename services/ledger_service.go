package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"jvracle/constants"
	apperrors "jvracle/errors"
	"jvracle/models"
	"jvracle/services/logger"
	"jvracle/storage"
)

// ReservationResolver cho phép ledger tra cứu trạng thái reservation
// mà không phụ thuộc ngược vào ReservationService
type ReservationResolver interface {
	ResolveStatus(confirmationNumber string) (string, error)
}

// LedgerService quản lý sổ cái folio: ghi bút toán append-only, giữ số dư
// chạy và số thứ tự ghi sổ cho từng folio. Mỗi folio là một critical
// section riêng, các folio khác nhau ghi song song được.
type LedgerService struct {
	mu            sync.RWMutex
	folios        map[string]*folioEntry
	txnIndex      map[string]string   // txn id -> folio id
	byReservation map[string][]string // confirmation number -> folio ids theo thứ tự mở
	folioSeq      int

	resolver ReservationResolver
	store    storage.Store
	clock    Clock
	log      logger.Logger
}

type folioEntry struct {
	mu    sync.Mutex
	folio models.Folio
	txns  []models.Transaction
	seq   int64
}

var postingCategories = map[string]bool{
	constants.CategoryRoomCharge: true,
	constants.CategoryTax:        true,
	constants.CategoryService:    true,
	constants.CategoryPayment:    true,
	constants.CategoryAdjustment: true,
	constants.CategoryRefund:     true,
}

// NewLedgerService tạo instance mới của LedgerService
func NewLedgerService(store storage.Store, clock Clock, log logger.Logger) *LedgerService {
	return &LedgerService{
		folios:        make(map[string]*folioEntry),
		txnIndex:      make(map[string]string),
		byReservation: make(map[string][]string),
		store:         store,
		clock:         clock,
		log:           log,
	}
}

// BindResolver gắn nguồn tra cứu trạng thái reservation, gọi một lần lúc khởi động
func (s *LedgerService) BindResolver(r ReservationResolver) {
	s.resolver = r
}

// OpenFolio mở folio mới cho reservation. Reservation đã ở trạng thái
// kết thúc thì không mở thêm được nữa.
func (s *LedgerService) OpenFolio(reservationID string) (*models.Folio, error) {
	if s.resolver != nil {
		status, err := s.resolver.ResolveStatus(reservationID)
		if err != nil {
			return nil, err
		}
		if isTerminalStatus(status) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidReservationState,
				fmt.Sprintf("cannot open folio for reservation %s in status %q", reservationID, status), nil)
		}
	}
	return s.openFolio(reservationID)
}

// openFolio bỏ qua bước kiểm tra trạng thái, dùng nội bộ khi
// ReservationService đang giữ lock của chính reservation đó
func (s *LedgerService) openFolio(reservationID string) (*models.Folio, error) {
	s.mu.Lock()
	s.folioSeq++
	folio := models.Folio{
		ID:            uuid.NewString(),
		Number:        fmt.Sprintf("FOL-%d-%03d", s.clock.Now().Year(), s.folioSeq),
		ReservationID: reservationID,
		Status:        constants.FolioStatusOpen,
		OpenedAt:      s.clock.Now(),
	}
	s.folios[folio.ID] = &folioEntry{folio: folio}
	s.byReservation[reservationID] = append(s.byReservation[reservationID], folio.ID)
	s.mu.Unlock()

	s.persistFolio(&folio)
	s.log.Info("Đã mở folio %s cho reservation %s", folio.Number, reservationID)
	out := folio
	return &out, nil
}

// ensurePrimaryFolio trả về folio đang mở đầu tiên của reservation,
// chưa có thì mở mới. Dùng cho check-in và no-show fee.
func (s *LedgerService) ensurePrimaryFolio(reservationID string) (*models.Folio, error) {
	s.mu.RLock()
	ids := append([]string(nil), s.byReservation[reservationID]...)
	s.mu.RUnlock()

	for _, id := range ids {
		entry := s.entry(id)
		if entry == nil {
			continue
		}
		entry.mu.Lock()
		open := !entry.folio.IsClosed()
		folio := entry.folio
		entry.mu.Unlock()
		if open {
			return &folio, nil
		}
	}
	return s.openFolio(reservationID)
}

// Post ghi một bút toán lên folio và trả về bút toán cùng số dư mới
func (s *LedgerService) Post(folioID string, amount int64, category, description, externalRef string) (*models.Transaction, int64, error) {
	return s.PostAs(folioID, amount, category, description, externalRef, "")
}

// PostAs như Post nhưng ghi kèm người/tiến trình thực hiện
func (s *LedgerService) PostAs(folioID string, amount int64, category, description, externalRef, postedBy string) (*models.Transaction, int64, error) {
	if amount == 0 {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidAmount, "zero-amount posting is not allowed", apperrors.ErrZeroAmount)
	}
	if !postingCategories[category] {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidCategory,
			fmt.Sprintf("unknown transaction category %q", category), nil)
	}

	entry := s.entry(folioID)
	if entry == nil {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("folio %s not found", folioID), apperrors.ErrFolioNotFound)
	}

	txn := models.Transaction{
		ID:          uuid.NewString(),
		FolioID:     folioID,
		Amount:      amount,
		Category:    category,
		Description: description,
		ExternalRef: externalRef,
		PostedAt:    s.clock.Now(),
		PostedBy:    postedBy,
	}

	entry.mu.Lock()
	if entry.folio.IsClosed() {
		entry.mu.Unlock()
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeFolioClosed,
			fmt.Sprintf("folio %s is closed", entry.folio.Number), nil)
	}
	entry.seq++
	txn.Sequence = entry.seq
	entry.folio.Balance += amount
	if amount > 0 {
		entry.folio.TotalCharges += amount
	} else {
		entry.folio.TotalPayments += -amount
	}
	entry.txns = append(entry.txns, txn)
	balance := entry.folio.Balance
	folioCopy := entry.folio
	entry.mu.Unlock()

	s.mu.Lock()
	s.txnIndex[txn.ID] = folioID
	s.mu.Unlock()

	s.persistTransaction(&txn, &folioCopy)
	return &txn, balance, nil
}

// Reverse ghi bút toán đảo cho một bút toán đã có. Bút toán gốc
// không bao giờ bị sửa hay xóa.
func (s *LedgerService) Reverse(txnID string) (*models.Transaction, error) {
	s.mu.RLock()
	folioID, ok := s.txnIndex[txnID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeTransactionNotFound,
			fmt.Sprintf("transaction %s not found", txnID), apperrors.ErrTransactionNotFound)
	}

	entry := s.entry(folioID)
	if entry == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeTransactionNotFound,
			fmt.Sprintf("transaction %s not found", txnID), apperrors.ErrTransactionNotFound)
	}

	entry.mu.Lock()
	if entry.folio.IsClosed() {
		entry.mu.Unlock()
		return nil, apperrors.NewAppError(apperrors.ErrCodeFolioClosed,
			fmt.Sprintf("folio %s is closed", entry.folio.Number), nil)
	}
	var original *models.Transaction
	for i := range entry.txns {
		if entry.txns[i].ID == txnID {
			original = &entry.txns[i]
			break
		}
	}
	if original == nil {
		entry.mu.Unlock()
		return nil, apperrors.NewAppError(apperrors.ErrCodeTransactionNotFound,
			fmt.Sprintf("transaction %s not found", txnID), apperrors.ErrTransactionNotFound)
	}

	reversal := models.Transaction{
		ID:          uuid.NewString(),
		FolioID:     folioID,
		Amount:      -original.Amount,
		Category:    constants.CategoryAdjustment,
		Description: "Reversal of " + original.Description,
		ReversalOf:  original.ID,
		PostedAt:    s.clock.Now(),
	}
	entry.seq++
	reversal.Sequence = entry.seq
	entry.folio.Balance += reversal.Amount
	if reversal.Amount > 0 {
		entry.folio.TotalCharges += reversal.Amount
	} else {
		entry.folio.TotalPayments += -reversal.Amount
	}
	entry.txns = append(entry.txns, reversal)
	folioCopy := entry.folio
	entry.mu.Unlock()

	s.mu.Lock()
	s.txnIndex[reversal.ID] = folioID
	s.mu.Unlock()

	s.persistTransaction(&reversal, &folioCopy)
	return &reversal, nil
}

// Balance trả về số dư hiện tại của folio, O(1) nhờ tổng được cache
func (s *LedgerService) Balance(folioID string) (int64, error) {
	entry := s.entry(folioID)
	if entry == nil {
		return 0, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("folio %s not found", folioID), apperrors.ErrFolioNotFound)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.folio.Balance, nil
}

// History trả về bản sao danh sách bút toán theo đúng thứ tự ghi sổ
func (s *LedgerService) History(folioID string) ([]models.Transaction, error) {
	entry := s.entry(folioID)
	if entry == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("folio %s not found", folioID), apperrors.ErrFolioNotFound)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	txns := make([]models.Transaction, len(entry.txns))
	copy(txns, entry.txns)
	return txns, nil
}

// GetFolio trả về bản sao folio (không kèm bút toán)
func (s *LedgerService) GetFolio(folioID string) (*models.Folio, error) {
	entry := s.entry(folioID)
	if entry == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("folio %s not found", folioID), apperrors.ErrFolioNotFound)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	folio := entry.folio
	return &folio, nil
}

// FoliosFor trả về bản sao mọi folio thuộc một reservation
func (s *LedgerService) FoliosFor(reservationID string) []models.Folio {
	s.mu.RLock()
	ids := append([]string(nil), s.byReservation[reservationID]...)
	s.mu.RUnlock()

	folios := make([]models.Folio, 0, len(ids))
	for _, id := range ids {
		entry := s.entry(id)
		if entry == nil {
			continue
		}
		entry.mu.Lock()
		folios = append(folios, entry.folio)
		entry.mu.Unlock()
	}
	return folios
}

// CloseFolio đóng folio khi số dư bằng 0 và reservation đã kết thúc
func (s *LedgerService) CloseFolio(folioID string) error {
	if s.resolver != nil {
		entry := s.entry(folioID)
		if entry == nil {
			return apperrors.NewAppError(apperrors.ErrCodeNotFound,
				fmt.Sprintf("folio %s not found", folioID), apperrors.ErrFolioNotFound)
		}
		entry.mu.Lock()
		reservationID := entry.folio.ReservationID
		entry.mu.Unlock()

		status, err := s.resolver.ResolveStatus(reservationID)
		if err != nil {
			return err
		}
		if !isTerminalStatus(status) {
			return apperrors.NewAppError(apperrors.ErrCodeInvalidReservationState,
				fmt.Sprintf("cannot close folio while reservation %s is in status %q", reservationID, status), nil)
		}
	}
	return s.closeFolio(folioID)
}

func (s *LedgerService) closeFolio(folioID string) error {
	entry := s.entry(folioID)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("folio %s not found", folioID), apperrors.ErrFolioNotFound)
	}

	entry.mu.Lock()
	if entry.folio.IsClosed() {
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeAlreadyClosed,
			fmt.Sprintf("folio %s is already closed", entry.folio.Number), nil)
	}
	if entry.folio.Balance != 0 {
		balance := entry.folio.Balance
		number := entry.folio.Number
		entry.mu.Unlock()
		return apperrors.NewAppError(apperrors.ErrCodeNonZeroBalance,
			fmt.Sprintf("folio %s has non-zero balance %d", number, balance), nil)
	}
	now := s.clock.Now()
	entry.folio.Status = constants.FolioStatusClosed
	entry.folio.ClosedAt = &now
	folioCopy := entry.folio
	entry.mu.Unlock()

	s.persistFolio(&folioCopy)
	s.log.Info("Đã đóng folio %s", folioCopy.Number)
	return nil
}

// reopenFolio mở lại folio vừa đóng trong cùng một lần check-out bị
// hỏng giữa chừng, để check-out luôn là thao tác trọn vẹn
func (s *LedgerService) reopenFolio(folioID string) {
	entry := s.entry(folioID)
	if entry == nil {
		return
	}
	entry.mu.Lock()
	entry.folio.Status = constants.FolioStatusOpen
	entry.folio.ClosedAt = nil
	folioCopy := entry.folio
	entry.mu.Unlock()

	s.persistFolio(&folioCopy)
}

// Audit đối chiếu số dư cache với tổng các bút toán, chỉ dùng cho
// recovery và kiểm toán
func (s *LedgerService) Audit(folioID string) error {
	entry := s.entry(folioID)
	if entry == nil {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound,
			fmt.Sprintf("folio %s not found", folioID), apperrors.ErrFolioNotFound)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	var sum int64
	for i := range entry.txns {
		sum += entry.txns[i].Amount
	}
	if sum != entry.folio.Balance {
		return fmt.Errorf("folio %s: cached balance %d does not match transaction sum %d",
			entry.folio.Number, entry.folio.Balance, sum)
	}
	return nil
}

// Restore nạp lại toàn bộ folio và bút toán từ store lúc khởi động.
// Số dư cache được tính lại từ tổng bút toán.
func (s *LedgerService) Restore() error {
	folios, err := s.store.LoadFolios()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, folio := range folios {
		txns, err := s.store.LoadTransactions(folio.ID)
		if err != nil {
			return err
		}
		var sum, seq int64
		for i := range txns {
			sum += txns[i].Amount
			if txns[i].Sequence > seq {
				seq = txns[i].Sequence
			}
			s.txnIndex[txns[i].ID] = folio.ID
		}
		if sum != folio.Balance {
			s.log.Warn("Folio %s: số dư cache %d lệch với tổng bút toán %d, dùng tổng bút toán",
				folio.Number, folio.Balance, sum)
			folio.Balance = sum
		}
		folio.Transactions = nil
		s.folios[folio.ID] = &folioEntry{folio: folio, txns: txns, seq: seq}
		s.byReservation[folio.ReservationID] = append(s.byReservation[folio.ReservationID], folio.ID)

		var n, year int
		if _, err := fmt.Sscanf(folio.Number, "FOL-%d-%03d", &year, &n); err == nil && n > s.folioSeq {
			s.folioSeq = n
		}
	}
	return nil
}

func (s *LedgerService) entry(folioID string) *folioEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folios[folioID]
}

func (s *LedgerService) persistTransaction(txn *models.Transaction, folio *models.Folio) {
	if err := s.store.AppendTransaction(txn); err != nil {
		s.log.Error("Không ghi được bút toán %s vào store: %v", txn.ID, err)
	}
	s.persistFolio(folio)
}

func (s *LedgerService) persistFolio(folio *models.Folio) {
	if err := s.store.SaveFolio(folio); err != nil {
		s.log.Error("Không lưu được folio %s vào store: %v", folio.Number, err)
	}
}

func isTerminalStatus(status string) bool {
	switch status {
	case constants.ReservationStatusCheckedOut,
		constants.ReservationStatusCancelled,
		constants.ReservationStatusNoShow:
		return true
	}
	return false
}
