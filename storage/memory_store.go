package storage

import (
	"sort"
	"sync"

	"jvracle/models"
)

// MemoryStore là implementation tạm trên bộ nhớ, dùng khi không có
// database hoặc trong test. An toàn với nhiều goroutine.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string][]models.Transaction // theo folio id
	folios       map[string]models.Folio
	reservations map[string]models.Reservation
	rooms        map[string]models.Room
	guests       map[string]models.Guest
	tasks        map[string]models.HousekeepingTask
}

// NewMemoryStore tạo instance mới của MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string][]models.Transaction),
		folios:       make(map[string]models.Folio),
		reservations: make(map[string]models.Reservation),
		rooms:        make(map[string]models.Room),
		guests:       make(map[string]models.Guest),
		tasks:        make(map[string]models.HousekeepingTask),
	}
}

func (s *MemoryStore) AppendTransaction(txn *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[txn.FolioID] = append(s.transactions[txn.FolioID], *txn)
	return nil
}

func (s *MemoryStore) SaveFolio(folio *models.Folio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := *folio
	f.Transactions = nil
	s.folios[f.ID] = f
	return nil
}

func (s *MemoryStore) SaveReservation(res *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservations[res.ConfirmationNumber] = *res
	return nil
}

func (s *MemoryStore) SaveRoom(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Number] = *room
	return nil
}

func (s *MemoryStore) SaveGuest(guest *models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guests[guest.ID] = *guest
	return nil
}

func (s *MemoryStore) SaveHousekeepingTask(task *models.HousekeepingTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryStore) LoadTransactions(folioID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txns := make([]models.Transaction, len(s.transactions[folioID]))
	copy(txns, s.transactions[folioID])
	sort.Slice(txns, func(i, j int) bool { return txns[i].Sequence < txns[j].Sequence })
	return txns, nil
}

func (s *MemoryStore) LoadFolios() ([]models.Folio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	folios := make([]models.Folio, 0, len(s.folios))
	for _, f := range s.folios {
		folios = append(folios, f)
	}
	return folios, nil
}

func (s *MemoryStore) LoadReservations() ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reservations := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		reservations = append(reservations, r)
	}
	return reservations, nil
}

func (s *MemoryStore) LoadRooms() ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	return rooms, nil
}

func (s *MemoryStore) LoadGuests() ([]models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	guests := make([]models.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		guests = append(guests, g)
	}
	return guests, nil
}
