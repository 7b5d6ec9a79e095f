package main

import (
	"goodreads/config"
	"goodreads/database"
	"goodreads/logger"
	"goodreads/middleware"
	"goodreads/server"
	"goodreads/utils"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	config.LoadConfig()
	logger.Init(config.AppConfig.Env)
	database.ConnectDb()
	middleware.InitSessions(time.Duration(config.AppConfig.SessionTTLHours) * time.Hour)

	scheduler, err := utils.InitializeRatingScheduler(config.AppConfig.RatingCron)
	if err != nil {
		logger.Log.Fatalf("Failed to start rating scheduler: %v", err)
	}

	app := server.New()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logger.Log.Info("Shutting down...")
		<-scheduler.Stop().Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log.Errorf("Shutdown failed: %v", err)
		}
	}()

	logger.Log.Infof("Server is running on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		logger.Log.Fatal(err)
	}
}
