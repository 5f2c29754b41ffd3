package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvracle/constants"
	"jvracle/dto"
	apperrors "jvracle/errors"
)

func TestValidateReservationRequest(t *testing.T) {
	req := dto.CreateReservationRequest{
		GuestID:      "g1",
		CheckInDate:  "2025-01-15",
		CheckOutDate: "2025-01-18",
		RoomType:     "Deluxe",
		RateAmount:   10000,
	}

	res, err := ValidateReservationRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "Deluxe", res.RoomType)
	assert.Equal(t, 1, res.Guests) // mặc định 1 khách
	assert.Equal(t, 3, res.Nights())

	tests := []struct {
		name     string
		mutate   func(r *dto.CreateReservationRequest)
		wantCode apperrors.ErrorCode
	}{
		{
			name:     "bad date format",
			mutate:   func(r *dto.CreateReservationRequest) { r.CheckInDate = "15/01/2025" },
			wantCode: apperrors.ErrCodeInvalidFormat,
		},
		{
			name:     "check-out before check-in",
			mutate:   func(r *dto.CreateReservationRequest) { r.CheckOutDate = "2025-01-10" },
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name:     "non-positive rate",
			mutate:   func(r *dto.CreateReservationRequest) { r.RateAmount = -5 },
			wantCode: apperrors.ErrCodeValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := req
			tt.mutate(&bad)
			_, err := ValidateReservationRequest(bad)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestValidateRoomRequest(t *testing.T) {
	room, err := ValidateRoomRequest(dto.AddRoomRequest{Number: " 201 ", Type: "Deluxe"})
	require.NoError(t, err)
	assert.Equal(t, "201", room.Number)
	assert.Equal(t, constants.RoomStatusClean, room.Status)
	assert.Equal(t, 2, room.MaxOccupancy)

	_, err = ValidateRoomRequest(dto.AddRoomRequest{Type: "Deluxe"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRequiredField))

	_, err = ValidateRoomRequest(dto.AddRoomRequest{Number: "201"})
	require.Error(t, err)
}

func TestValidateRoomStatus(t *testing.T) {
	for _, status := range []string{
		constants.RoomStatusClean,
		constants.RoomStatusDirty,
		constants.RoomStatusOccupied,
		constants.RoomStatusMaintenance,
		constants.RoomStatusOutOfOrder,
	} {
		assert.NoError(t, ValidateRoomStatus(status))
	}
	assert.Error(t, ValidateRoomStatus("sparkling"))
	assert.Error(t, ValidateRoomStatus(""))
}
