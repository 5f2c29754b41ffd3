package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"jvracle/models"
	"jvracle/services/logger"
	"jvracle/storage"
)

// testClock cho test điều khiển được thời gian
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// harness dựng đủ bộ service trên MemoryStore cho test
type harness struct {
	store        *storage.MemoryStore
	clock        *testClock
	ledger       *LedgerService
	registry     *RoomRegistry
	reservations *ReservationService
	coordinator  *FolioCoordinator
	guests       *GuestService
}

func newHarness(t *testing.T, noShowFee int64) *harness {
	t.Helper()

	store := storage.NewMemoryStore()
	clock := &testClock{t: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)}
	log := logger.NewDefaultLogger(logger.ErrorLevel)

	ledger := NewLedgerService(store, clock, log)
	registry := NewRoomRegistry(store, clock, log)
	reservations := NewReservationService(ReservationServiceOptions{
		Registry:  registry,
		Ledger:    ledger,
		Store:     store,
		Clock:     clock,
		Logger:    log,
		NoShowFee: noShowFee,
	})
	registry.Bind(reservations)
	ledger.BindResolver(reservations)

	return &harness{
		store:        store,
		clock:        clock,
		ledger:       ledger,
		registry:     registry,
		reservations: reservations,
		coordinator:  NewFolioCoordinator(ledger, reservations, log),
		guests:       NewGuestService(store, log),
	}
}

func (h *harness) addRoom(t *testing.T, number, roomType string) {
	t.Helper()
	require.NoError(t, h.registry.AddRoom(models.Room{Number: number, Type: roomType}))
}

func (h *harness) newReservation(t *testing.T, roomType string, checkInDay, checkOutDay int, rate int64) *models.Reservation {
	t.Helper()
	res, err := h.reservations.CreateReservation(models.Reservation{
		CheckInDate:  time.Date(2025, 1, checkInDay, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2025, 1, checkOutDay, 0, 0, 0, 0, time.UTC),
		RoomType:     roomType,
		RateAmount:   rate,
	})
	require.NoError(t, err)
	return res
}

// primaryFolio trả về folio đầu tiên của reservation, check-in phải mở nó rồi
func (h *harness) primaryFolio(t *testing.T, confirmationNumber string) *models.Folio {
	t.Helper()
	folios := h.ledger.FoliosFor(confirmationNumber)
	require.NotEmpty(t, folios)
	return &folios[0]
}
