package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvracle/constants"
	apperrors "jvracle/errors"
	"jvracle/services/logger"
	"jvracle/storage"
)

// newLedger dựng ledger trần, không resolver, cho test đơn vị của sổ cái
func newLedger(t *testing.T) (*LedgerService, *storage.MemoryStore, *testClock) {
	t.Helper()
	store := storage.NewMemoryStore()
	clock := &testClock{t: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)}
	ledger := NewLedgerService(store, clock, logger.NewDefaultLogger(logger.ErrorLevel))
	return ledger, store, clock
}

func TestOpenFolioNumbering(t *testing.T) {
	ledger, _, _ := newLedger(t)

	first, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)
	second, err := ledger.OpenFolio("JV2025002")
	require.NoError(t, err)

	assert.Equal(t, "FOL-2025-001", first.Number)
	assert.Equal(t, "FOL-2025-002", second.Number)
	assert.Equal(t, constants.FolioStatusOpen, first.Status)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPostUpdatesBalanceAndSequence(t *testing.T) {
	ledger, _, _ := newLedger(t)
	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)

	txn1, balance, err := ledger.Post(folio.ID, 50500, constants.CategoryRoomCharge, "Room Charge", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), txn1.Sequence)
	assert.Equal(t, int64(50500), balance)

	txn2, balance, err := ledger.Post(folio.ID, -20000, constants.CategoryPayment, "Deposit", "rcpt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), txn2.Sequence)
	assert.Equal(t, int64(30500), balance)

	got, err := ledger.GetFolio(folio.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30500), got.Balance)
	assert.Equal(t, int64(50500), got.TotalCharges)
	assert.Equal(t, int64(20000), got.TotalPayments)

	history, err := ledger.History(folio.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, txn1.ID, history[0].ID)
	assert.Equal(t, txn2.ID, history[1].ID)
	assert.Equal(t, "rcpt-1", history[1].ExternalRef)
}

func TestPostValidation(t *testing.T) {
	ledger, _, _ := newLedger(t)
	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)

	tests := []struct {
		name     string
		folioID  string
		amount   int64
		category string
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "zero amount",
			folioID:  folio.ID,
			amount:   0,
			category: constants.CategoryRoomCharge,
			wantCode: apperrors.ErrCodeInvalidAmount,
		},
		{
			name:     "unknown category",
			folioID:  folio.ID,
			amount:   1000,
			category: "minibar-magic",
			wantCode: apperrors.ErrCodeInvalidCategory,
		},
		{
			name:     "unknown folio",
			folioID:  "missing",
			amount:   1000,
			category: constants.CategoryRoomCharge,
			wantCode: apperrors.ErrCodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ledger.Post(tt.folioID, tt.amount, tt.category, "x", "")
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	// Bút toán hỏng không được ghi vào history
	history, err := ledger.History(folio.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPostOnClosedFolio(t *testing.T) {
	ledger, _, _ := newLedger(t)
	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)
	require.NoError(t, ledger.CloseFolio(folio.ID))

	_, _, err = ledger.Post(folio.ID, 1000, constants.CategoryService, "Minibar", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeFolioClosed))
}

func TestReverseTransaction(t *testing.T) {
	ledger, _, _ := newLedger(t)
	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)

	original, _, err := ledger.Post(folio.ID, 7500, constants.CategoryService, "Minibar", "")
	require.NoError(t, err)

	reversal, err := ledger.Reverse(original.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-7500), reversal.Amount)
	assert.Equal(t, constants.CategoryAdjustment, reversal.Category)
	assert.Equal(t, original.ID, reversal.ReversalOf)
	assert.Equal(t, int64(2), reversal.Sequence)

	balance, err := ledger.Balance(folio.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// Bút toán gốc không bị sửa
	history, err := ledger.History(folio.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(7500), history[0].Amount)

	_, err = ledger.Reverse("missing")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTransactionNotFound))
}

func TestCloseFolio(t *testing.T) {
	ledger, _, _ := newLedger(t)
	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)

	_, _, err = ledger.Post(folio.ID, 1000, constants.CategoryService, "Minibar", "")
	require.NoError(t, err)

	err = ledger.CloseFolio(folio.ID)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNonZeroBalance))

	_, _, err = ledger.Post(folio.ID, -1000, constants.CategoryPayment, "Cash", "")
	require.NoError(t, err)
	require.NoError(t, ledger.CloseFolio(folio.ID))

	got, err := ledger.GetFolio(folio.ID)
	require.NoError(t, err)
	assert.True(t, got.IsClosed())
	require.NotNil(t, got.ClosedAt)

	err = ledger.CloseFolio(folio.ID)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlreadyClosed))
}

type stubResolver struct {
	status string
}

func (r *stubResolver) ResolveStatus(string) (string, error) {
	return r.status, nil
}

func TestResolverGuardsOpenAndClose(t *testing.T) {
	ledger, _, _ := newLedger(t)
	resolver := &stubResolver{status: constants.ReservationStatusConfirmed}
	ledger.BindResolver(resolver)

	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)

	// Reservation còn hiệu lực thì chưa đóng folio được
	err = ledger.CloseFolio(folio.ID)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidReservationState))

	resolver.status = constants.ReservationStatusCancelled
	require.NoError(t, ledger.CloseFolio(folio.ID))

	// Reservation đã kết thúc thì không mở folio mới
	_, err = ledger.OpenFolio("JV2025001")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidReservationState))
}

func TestConcurrentPostsKeepLedgerConsistent(t *testing.T) {
	ledger, _, _ := newLedger(t)
	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			_, _, err := ledger.Post(folio.ID, 100, constants.CategoryService,
				fmt.Sprintf("posting %d", n), "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	balance, err := ledger.Balance(folio.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100*workers), balance)

	history, err := ledger.History(folio.ID)
	require.NoError(t, err)
	require.Len(t, history, workers)

	// Số thứ tự ghi sổ liền mạch, không trùng không hổng
	seen := make(map[int64]bool, workers)
	for _, txn := range history {
		assert.False(t, seen[txn.Sequence], "duplicate sequence %d", txn.Sequence)
		seen[txn.Sequence] = true
		assert.GreaterOrEqual(t, txn.Sequence, int64(1))
		assert.LessOrEqual(t, txn.Sequence, int64(workers))
	}

	require.NoError(t, ledger.Audit(folio.ID))
}

func TestRestoreRebuildsLedgerFromStore(t *testing.T) {
	ledger, store, clock := newLedger(t)
	folio, err := ledger.OpenFolio("JV2025001")
	require.NoError(t, err)
	_, _, err = ledger.Post(folio.ID, 50500, constants.CategoryRoomCharge, "Room Charge", "")
	require.NoError(t, err)
	_, _, err = ledger.Post(folio.ID, -500, constants.CategoryPayment, "Deposit", "")
	require.NoError(t, err)

	restored := NewLedgerService(store, clock, logger.NewDefaultLogger(logger.ErrorLevel))
	require.NoError(t, restored.Restore())

	balance, err := restored.Balance(folio.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), balance)

	history, err := restored.History(folio.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(1), history[0].Sequence)

	// Bút toán và folio mới tiếp nối số thứ tự cũ
	txn, _, err := restored.Post(folio.ID, 1000, constants.CategoryService, "Minibar", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), txn.Sequence)

	next, err := restored.OpenFolio("JV2025002")
	require.NoError(t, err)
	assert.Equal(t, "FOL-2025-002", next.Number)

	require.NoError(t, restored.Audit(folio.ID))
}
