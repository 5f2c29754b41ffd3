package routes

import (
	"github.com/gin-gonic/gin"

	"jvracle/controllers"
	middlewares "jvracle/middleware"
	"jvracle/services"
)

// SetupRoutes đăng ký toàn bộ route của API
func SetupRoutes(router *gin.Engine,
	reservations *services.ReservationService,
	coordinator *services.FolioCoordinator,
	ledger *services.LedgerService,
	registry *services.RoomRegistry,
	board *services.BoardCache,
	guests *services.GuestService) {

	router.Use(middlewares.RequestIDMiddleware())
	router.Use(middlewares.RequestLogger())

	reservationController := controllers.NewReservationController(reservations, coordinator)
	folioController := controllers.NewFolioController(coordinator, ledger)
	roomController := controllers.NewRoomController(registry, board, reservations, guests)
	guestController := controllers.NewGuestController(guests)

	v1 := router.Group("/api/v1")

	// Reservation lifecycle
	v1.POST("/reservations", reservationController.CreateReservation)
	v1.GET("/reservations", reservationController.ListReservations)
	v1.GET("/reservations/:confirmationNumber", reservationController.GetReservation)
	v1.GET("/reservations/:confirmationNumber/folios", folioController.ListFolios)
	v1.POST("/checkin", reservationController.CheckIn)
	v1.POST("/checkout", reservationController.CheckOut)
	v1.POST("/cancel", reservationController.Cancel)
	v1.POST("/noShow", reservationController.MarkNoShow)
	v1.POST("/moveRoom", reservationController.MoveRoom)

	// Folio ledger
	v1.POST("/folios", folioController.OpenFolio)
	v1.GET("/folios/:folioId", folioController.GetFolio)
	v1.GET("/folios/:folioId/transactions", folioController.GetHistory)
	v1.POST("/charges", folioController.PostCharge)
	v1.POST("/payments", folioController.PostPayment)
	v1.POST("/reversals", folioController.ReverseTransaction)
	v1.PUT("/folioClose", folioController.CloseFolio)

	// Rooms và housekeeping
	v1.POST("/rooms", roomController.AddRoom)
	v1.GET("/rooms", roomController.ListRooms)
	v1.GET("/rooms/:number", roomController.GetRoom)
	v1.PUT("/roomStatus", roomController.SetStatus)
	v1.DELETE("/rooms/:number", roomController.Retire)
	v1.GET("/availableRooms", roomController.FindAvailable)
	v1.GET("/roomBoard", roomController.RoomBoard)
	v1.GET("/housekeepingTasks", roomController.ListTasks)
	v1.PUT("/housekeepingTasks", roomController.CompleteTask)

	// Guests
	v1.POST("/guests", guestController.CreateGuest)
	v1.GET("/guests/:id", guestController.GetGuest)
	v1.GET("/guestSearch", guestController.SearchGuests)
}
