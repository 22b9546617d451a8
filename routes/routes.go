package routes

import (
	"github.com/gin-gonic/gin"

	"maidly/handlers"
)

// RegisterRoutes wires every endpoint for the booking engine.
func RegisterRoutes(
	r *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	pricingHandler *handlers.PricingHandler,
	promoHandler *handlers.PromoHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	cleanerHandler *handlers.CleanerHandler,
	serviceHandler *handlers.ServiceHandler,
) {
	api := r.Group("/api")
	{
		api.POST("/pricing/quote", pricingHandler.Quote)
		api.POST("/promo/validate", promoHandler.Validate)

		api.GET("/availability/dates", availabilityHandler.Dates)
		api.GET("/availability/slot", availabilityHandler.Slot)

		api.GET("/services", serviceHandler.List)
		api.GET("/services/a-la-carte", serviceHandler.ListALaCarte)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.POST("/:id/assign", bookingHandler.AssignCleaner)
			bookings.POST("/:id/clock-in", bookingHandler.ClockIn)
			bookings.POST("/:id/clock-out", bookingHandler.ClockOut)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		}
		api.GET("/customers/:id/bookings", bookingHandler.ListCustomerBookings)

		admin := api.Group("/admin")
		{
			admin.POST("/promos", promoHandler.Create)
			admin.POST("/promos/:id/deactivate", promoHandler.Deactivate)
			admin.GET("/promos/:id/usage", promoHandler.Usage)

			admin.POST("/cleaners", cleanerHandler.Create)
			admin.GET("/cleaners", cleanerHandler.List)
			admin.GET("/cleaners/:id", cleanerHandler.Get)
			admin.PUT("/cleaners/:id", cleanerHandler.Update)

			admin.PUT("/services", serviceHandler.Upsert)
		}
	}
}
