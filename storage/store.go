package storage

import "jvracle/models"

// Store định nghĩa contract lưu trữ cho phần core: append bút toán và
// upsert các bản ghi reservation/room/folio. Core không quan tâm phía sau
// là Postgres hay bộ nhớ, nên có thể chạy không cần database.
type Store interface {
	AppendTransaction(txn *models.Transaction) error
	SaveFolio(folio *models.Folio) error
	SaveReservation(res *models.Reservation) error
	SaveRoom(room *models.Room) error
	SaveGuest(guest *models.Guest) error
	SaveHousekeepingTask(task *models.HousekeepingTask) error

	LoadTransactions(folioID string) ([]models.Transaction, error)
	LoadFolios() ([]models.Folio, error)
	LoadReservations() ([]models.Reservation, error)
	LoadRooms() ([]models.Room, error)
	LoadGuests() ([]models.Guest, error)
}
