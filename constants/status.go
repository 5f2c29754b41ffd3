package constants

// Room status
const (
	RoomStatusClean       = "clean"
	RoomStatusDirty       = "dirty"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
	RoomStatusOutOfOrder  = "out-of-order"
)

// Reservation status
const (
	ReservationStatusConfirmed  = "confirmed"
	ReservationStatusCheckedIn  = "checked-in"
	ReservationStatusCheckedOut = "checked-out"
	ReservationStatusCancelled  = "cancelled"
	ReservationStatusNoShow     = "no-show"
)

// Folio status
const (
	FolioStatusOpen   = "open"
	FolioStatusClosed = "closed"
)

// Transaction category
const (
	CategoryRoomCharge = "room-charge"
	CategoryTax        = "tax"
	CategoryService    = "service"
	CategoryPayment    = "payment"
	CategoryAdjustment = "adjustment"
	CategoryRefund     = "refund"
)

// Housekeeping task
const (
	TaskTypeCheckoutCleaning    = "checkout_cleaning"
	TaskTypeMaintenanceCleaning = "maintenance_cleaning"
	TaskStatusPending           = "pending"
	TaskStatusCompleted         = "completed"
)
