package storage

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jvracle/models"
)

// GormStore là implementation bền vững trên Postgres qua GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore tạo instance mới của GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate tạo schema cho các bảng của core
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&models.Room{},
		&models.Reservation{},
		&models.Folio{},
		&models.Transaction{},
		&models.Guest{},
		&models.HousekeepingTask{},
	)
}

// AppendTransaction ghi thêm bút toán, không bao giờ update
func (s *GormStore) AppendTransaction(txn *models.Transaction) error {
	return s.db.Create(txn).Error
}

func (s *GormStore) SaveFolio(folio *models.Folio) error {
	return s.upsert(&models.Folio{}, folio)
}

func (s *GormStore) SaveReservation(res *models.Reservation) error {
	return s.upsert(&models.Reservation{}, res)
}

func (s *GormStore) SaveRoom(room *models.Room) error {
	return s.upsert(&models.Room{}, room)
}

func (s *GormStore) SaveGuest(guest *models.Guest) error {
	return s.upsert(&models.Guest{}, guest)
}

func (s *GormStore) SaveHousekeepingTask(task *models.HousekeepingTask) error {
	return s.upsert(&models.HousekeepingTask{}, task)
}

func (s *GormStore) upsert(model interface{}, value interface{}) error {
	return s.db.Model(model).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Omit(clause.Associations).
		Create(value).Error
}

func (s *GormStore) LoadTransactions(folioID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.Where("folio_id = ?", folioID).Order("sequence asc").Find(&txns).Error
	return txns, err
}

func (s *GormStore) LoadFolios() ([]models.Folio, error) {
	var folios []models.Folio
	err := s.db.Find(&folios).Error
	return folios, err
}

func (s *GormStore) LoadReservations() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Find(&reservations).Error
	return reservations, err
}

func (s *GormStore) LoadRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Find(&rooms).Error
	return rooms, err
}

func (s *GormStore) LoadGuests() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.db.Find(&guests).Error
	return guests, err
}
