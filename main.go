// File: bookable/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookable/config"
	"bookable/cron"
	"bookable/database"
	appointmentRepo "bookable/database/repository/appointment"
	availabilityRepo "bookable/database/repository/availability"
	"bookable/handlers"
	"bookable/middleware"
	"bookable/routes"
	"bookable/services/notification"
	"bookable/services/scheduling"
	"bookable/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	notificationService := &notification.LogNotificationService{}
	reminderScheduler := cron.NewReminderScheduler()
	schedulingService := scheduling.NewDefaultSchedulingService(
		availRepo,
		apptRepo,
		notificationService,
		reminderScheduler,
		scheduling.PolicyFromConfig(),
	)

	availabilityHandler := handlers.NewAvailabilityHandler(schedulingService, utils.GetCacheClient())
	appointmentHandler := handlers.NewAppointmentHandler(schedulingService)
	routes.RegisterSchedulingRoutes(router, availabilityHandler, appointmentHandler)

	// Background reminder worker.
	cron.InitReminderWorker(notificationService)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
}
