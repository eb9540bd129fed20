package routes

import (
	"bookable/handlers"
	"bookable/middleware"
	"bookable/models"

	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes registers all endpoints for the scheduling engine.
func RegisterSchedulingRoutes(r *gin.Engine, availability *handlers.AvailabilityHandler, appointments *handlers.AppointmentHandler) {
	api := r.Group("/api")
	api.Use(middleware.ActorAuthMiddleware())

	business := api.Group("/businesses/:businessID")
	{
		business.PUT("/availability", middleware.RequireRole(models.RoleBusiness), availability.SetAvailability)
		business.POST("/availability/validate", availability.ValidateAvailability)
		business.GET("/availability/day", availability.ResolveDay)
		business.GET("/slots", availability.ListAvailableSlots)
		business.GET("/appointments", appointments.List)
	}

	appts := api.Group("/appointments")
	{
		appts.POST("", appointments.Book)
		appts.GET("/:id", appointments.Get)
		appts.PATCH("/:id", appointments.Update)
		appts.POST("/:id/cancel", appointments.Cancel)
	}
}
