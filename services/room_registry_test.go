package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jvracle/constants"
	apperrors "jvracle/errors"
	"jvracle/models"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestAddRoom(t *testing.T) {
	h := newHarness(t, 0)

	require.NoError(t, h.registry.AddRoom(models.Room{Number: "201", Type: "Deluxe"}))

	room, err := h.registry.GetRoom("201")
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusClean, room.Status)

	err = h.registry.AddRoom(models.Room{Number: "201", Type: "Deluxe"})
	require.Error(t, err)

	err = h.registry.AddRoom(models.Room{Number: "", Type: "Deluxe"})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRequiredField))

	err = h.registry.AddRoom(models.Room{Number: "202", Type: "Deluxe", Status: "sparkling"})
	require.Error(t, err)
}

func TestSetStatus(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")

	// occupied không đặt trực tiếp được
	err := h.registry.SetStatus("201", constants.RoomStatusOccupied)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition))

	require.NoError(t, h.registry.SetStatus("201", constants.RoomStatusDirty))
	room, err := h.registry.GetRoom("201")
	require.NoError(t, err)
	assert.Nil(t, room.LastCleaned)

	// dirty -> clean ghi lại thời điểm dọn
	require.NoError(t, h.registry.SetStatus("201", constants.RoomStatusClean))
	room, err = h.registry.GetRoom("201")
	require.NoError(t, err)
	require.NotNil(t, room.LastCleaned)
	assert.Equal(t, h.clock.Now(), *room.LastCleaned)

	// Phòng đang có khách thì housekeeping không đổi trạng thái được
	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	require.NoError(t, h.reservations.CheckIn(res.ConfirmationNumber, "201"))
	err = h.registry.SetStatus("201", constants.RoomStatusMaintenance)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition))
}

func TestAssignRequiresBoundStateMachine(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")

	// Một service khác, không phải bên đã Bind
	stranger := NewReservationService(ReservationServiceOptions{})

	err := h.registry.Assign(stranger, "201", "JV2025001", day(15), day(18))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	err = h.registry.Assign(nil, "201", "JV2025001", day(15), day(18))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	err = h.registry.Release(stranger, "201")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	room, err := h.registry.GetRoom("201")
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusClean, room.Status)
}

func TestAssignUnavailableRooms(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")
	h.addRoom(t, "202", "Deluxe")
	h.addRoom(t, "203", "Deluxe")

	require.NoError(t, h.registry.SetStatus("202", constants.RoomStatusMaintenance))
	require.NoError(t, h.registry.Retire("203"))

	res := h.newReservation(t, "Deluxe", 15, 18, 10000)

	err := h.reservations.CheckIn(res.ConfirmationNumber, "202")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRoomUnavailable))

	err = h.reservations.CheckIn(res.ConfirmationNumber, "203")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRoomUnavailable))

	require.NoError(t, h.reservations.CheckIn(res.ConfirmationNumber, "201"))
}

func TestFindAvailable(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")
	h.addRoom(t, "202", "Deluxe")
	h.addRoom(t, "301", "Suite")
	h.addRoom(t, "302", "Deluxe")

	require.NoError(t, h.registry.SetStatus("302", constants.RoomStatusOutOfOrder))

	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	require.NoError(t, h.reservations.CheckIn(res.ConfirmationNumber, "201"))

	// Trùng lịch: chỉ 202 trống loại Deluxe
	assert.Equal(t, []string{"202"}, h.registry.FindAvailable("Deluxe", day(16), day(17)))

	// Sát lịch không tính là trùng: [15,18) và [18,20)
	assert.Equal(t, []string{"201", "202"}, h.registry.FindAvailable("Deluxe", day(18), day(20)))

	assert.Equal(t, []string{"301"}, h.registry.FindAvailable("Suite", day(16), day(17)))
	assert.Empty(t, h.registry.FindAvailable("Bungalow", day(16), day(17)))
}

func TestReleaseCreatesCleaningTask(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")

	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	require.NoError(t, h.reservations.CheckIn(res.ConfirmationNumber, "201"))
	require.NoError(t, h.reservations.CheckOut(res.ConfirmationNumber))

	tasks := h.registry.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "201", tasks[0].RoomNumber)
	assert.Equal(t, constants.TaskTypeCheckoutCleaning, tasks[0].TaskType)
	assert.Equal(t, constants.TaskStatusPending, tasks[0].Status)

	require.NoError(t, h.registry.CompleteTask(tasks[0].ID))
	room, err := h.registry.GetRoom("201")
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusClean, room.Status)
	require.NotNil(t, room.LastCleaned)

	err = h.registry.CompleteTask(tasks[0].ID)
	require.Error(t, err)

	err = h.registry.CompleteTask("missing")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestRetireOccupiedRoom(t *testing.T) {
	h := newHarness(t, 0)
	h.addRoom(t, "201", "Deluxe")

	res := h.newReservation(t, "Deluxe", 15, 18, 10000)
	require.NoError(t, h.reservations.CheckIn(res.ConfirmationNumber, "201"))

	err := h.registry.Retire("201")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition))

	require.NoError(t, h.reservations.CheckOut(res.ConfirmationNumber))
	require.NoError(t, h.registry.Retire("201"))

	room, err := h.registry.GetRoom("201")
	require.NoError(t, err)
	assert.True(t, room.Retired)
	assert.Empty(t, h.registry.FindAvailable("Deluxe", day(20), day(21)))
}
