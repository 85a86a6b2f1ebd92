// main.go
package main

import (
	"log"
	"time"

	"sauna-booking/cmd"
	"sauna-booking/internal/data/repository"
	"sauna-booking/internal/notifier"
	"sauna-booking/internal/wire"
	"sauna-booking/pkg/database"
	"sauna-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// All booking times are interpreted in the venue's timezone
	loc, err := time.LoadLocation(config.App.Timezone)
	if err != nil {
		logger.Fatal("Failed to load venue timezone", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs the rate limiter; nil disables it (fail open)
	rdb := database.InitRedis(config.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	// Pick the notification driver
	var notify notifier.Notifier
	switch config.Notifier.Driver {
	case "twilio":
		notify = notifier.NewSMSNotifier(
			config.Notifier.TwilioSID,
			config.Notifier.TwilioToken,
			config.Notifier.TwilioFrom,
			logger,
		)
	case "amqp":
		notify = notifier.NewQueueNotifier(config.Notifier.AMQPURL, config.Notifier.AMQPQueue, logger)
	default:
		notify = notifier.NewLogNotifier(logger)
	}

	logger.Info("Notifier initialized", zap.String("driver", config.Notifier.Driver))

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, notify, rdb, loc, logger)

	// Start the hold-expiry sweeper
	scheduler, err := app.Service.Sweeper.StartScheduler(config.Sweeper.Spec)
	if err != nil {
		logger.Fatal("Failed to start expiry sweeper", zap.Error(err))
	}
	defer scheduler.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
