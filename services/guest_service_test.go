package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "jvracle/errors"
	"jvracle/models"
	"jvracle/services/logger"
)

func TestCreateGuest(t *testing.T) {
	h := newHarness(t, 0)

	guest, err := h.guests.CreateGuest(models.Guest{FirstName: "An", LastName: "Nguyễn"})
	require.NoError(t, err)
	assert.NotEmpty(t, guest.ID)
	assert.Equal(t, "An Nguyễn", guest.FullName())

	_, err = h.guests.CreateGuest(models.Guest{FirstName: "NoLast"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRequiredField))

	got, err := h.guests.GetGuest(guest.ID)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, got.ID)

	_, err = h.guests.GetGuest("missing")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestSearchGuests(t *testing.T) {
	h := newHarness(t, 0)

	names := []models.Guest{
		{FirstName: "An", LastName: "Nguyễn"},
		{FirstName: "Bình", LastName: "Trần"},
		{FirstName: "Charlotte", LastName: "Williams"},
		{FirstName: "Dũng", LastName: "Phạm"},
	}
	for _, g := range names {
		_, err := h.guests.CreateGuest(g)
		require.NoError(t, err)
	}

	// Tìm không dấu vẫn ra tên có dấu
	results := h.guests.SearchGuests("an nguyen", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "Nguyễn", results[0].LastName)

	// Gõ sai một vài ký tự vẫn khớp
	results = h.guests.SearchGuests("charlote wiliams", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "Williams", results[0].LastName)

	assert.Empty(t, h.guests.SearchGuests("   ", 5))

	// Giới hạn số kết quả
	results = h.guests.SearchGuests("an", 1)
	assert.LessOrEqual(t, len(results), 1)
}

func TestGuestRestore(t *testing.T) {
	h := newHarness(t, 0)
	guest, err := h.guests.CreateGuest(models.Guest{FirstName: "An", LastName: "Nguyễn"})
	require.NoError(t, err)

	restored := NewGuestService(h.store, logger.NewDefaultLogger(logger.ErrorLevel))
	require.NoError(t, restored.Restore())

	got, err := restored.GetGuest(guest.ID)
	require.NoError(t, err)
	assert.Equal(t, "An", got.FirstName)
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, calculateSimilarity("nguyen", "nguyen"))
	assert.Equal(t, 1.0, calculateSimilarity("", ""))
	assert.Greater(t, calculateSimilarity("nguyen", "nguyne"), 0.6)
	assert.Less(t, calculateSimilarity("nguyen", "zzz"), 0.3)
}
