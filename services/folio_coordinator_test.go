package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvracle/constants"
	apperrors "jvracle/errors"
)

func TestPostChargeValidation(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")
	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	require.NoError(t, h.reservations.CheckIn(res.ConfirmationNumber, "201"))
	folio := h.primaryFolio(t, res.ConfirmationNumber)

	tests := []struct {
		name     string
		amount   int64
		category string
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "negative amount",
			amount:   -1000,
			category: constants.CategoryRoomCharge,
			wantCode: apperrors.ErrCodeInvalidAmount,
		},
		{
			name:     "zero amount",
			amount:   0,
			category: constants.CategoryRoomCharge,
			wantCode: apperrors.ErrCodeInvalidAmount,
		},
		{
			name:     "credit category on a charge",
			amount:   1000,
			category: constants.CategoryPayment,
			wantCode: apperrors.ErrCodeInvalidCategory,
		},
		{
			name:     "unknown category",
			amount:   1000,
			category: "tips",
			wantCode: apperrors.ErrCodeInvalidCategory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.coordinator.PostCharge(folio.ID, tt.amount, tt.category, "x", "", "")
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestPostChargeRejectedOnEndedReservation(t *testing.T) {
	h := newHarness(t, 0)
	res := h.newReservation(t, "Deluxe", 15, 18, 10000)

	folio, err := h.coordinator.OpenFolio(res.ConfirmationNumber)
	require.NoError(t, err)

	// confirmed thì ghi phí được (đặt cọc, phí giữ chỗ)
	_, _, err = h.coordinator.PostCharge(folio.ID, 5000, constants.CategoryService, "Deposit hold", "", "")
	require.NoError(t, err)

	require.NoError(t, h.reservations.Cancel(res.ConfirmationNumber, "guest request"))

	_, _, err = h.coordinator.PostCharge(folio.ID, 5000, constants.CategoryService, "Late fee", "", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidReservationState))

	// Thanh toán tất toán vẫn được khi folio còn mở
	_, balance, err := h.coordinator.PostPayment(folio.ID, -5000, "", "Settlement", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestPostPaymentValidation(t *testing.T) {
	h := newHarness(t, 0)
	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	folio, err := h.coordinator.OpenFolio(res.ConfirmationNumber)
	require.NoError(t, err)

	_, _, err = h.coordinator.PostPayment(folio.ID, 1000, constants.CategoryPayment, "x", "", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidAmount))

	_, _, err = h.coordinator.PostPayment(folio.ID, -1000, constants.CategoryRoomCharge, "x", "", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidCategory))

	// Không truyền category thì mặc định là payment
	txn, _, err := h.coordinator.PostPayment(folio.ID, -1000, "", "Cash", "", "")
	require.NoError(t, err)
	assert.Equal(t, constants.CategoryPayment, txn.Category)
}

func TestOpenFolioRejectedOnEndedReservation(t *testing.T) {
	h := newHarness(t, 0)
	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	require.NoError(t, h.reservations.Cancel(res.ConfirmationNumber, "guest request"))

	_, err := h.coordinator.OpenFolio(res.ConfirmationNumber)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidReservationState))
}

func TestReverseThroughCoordinator(t *testing.T) {
	h := newHarness(t, 0)
	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	folio, err := h.coordinator.OpenFolio(res.ConfirmationNumber)
	require.NoError(t, err)

	txn, _, err := h.coordinator.PostCharge(folio.ID, 2500, constants.CategoryService, "Minibar", "", "")
	require.NoError(t, err)

	reversal, err := h.coordinator.ReverseTransaction(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-2500), reversal.Amount)
	assert.Equal(t, txn.ID, reversal.ReversalOf)

	balance, err := h.ledger.Balance(folio.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestSecondFolioSplitsCharges(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")
	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	require.NoError(t, h.reservations.CheckIn(res.ConfirmationNumber, "201"))

	incidentals, err := h.coordinator.OpenFolio(res.ConfirmationNumber)
	require.NoError(t, err)

	folios := h.ledger.FoliosFor(res.ConfirmationNumber)
	require.Len(t, folios, 2)

	primary := h.primaryFolio(t, res.ConfirmationNumber)
	_, _, err = h.coordinator.PostCharge(primary.ID, 30000, constants.CategoryRoomCharge, "Room Charge", "", "")
	require.NoError(t, err)
	_, _, err = h.coordinator.PostCharge(incidentals.ID, 4500, constants.CategoryService, "Minibar", "", "")
	require.NoError(t, err)

	// Check-out đòi cả hai folio về 0
	err = h.coordinator.RequestCheckOut(res.ConfirmationNumber)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeOutstandingBalance))

	_, _, err = h.coordinator.PostPayment(primary.ID, -30000, "", "Card", "", "")
	require.NoError(t, err)
	_, _, err = h.coordinator.PostPayment(incidentals.ID, -4500, "", "Cash", "", "")
	require.NoError(t, err)

	require.NoError(t, h.coordinator.RequestCheckOut(res.ConfirmationNumber))
	for _, f := range h.ledger.FoliosFor(res.ConfirmationNumber) {
		assert.True(t, f.IsClosed(), "folio %s must be closed", f.Number)
	}
}
