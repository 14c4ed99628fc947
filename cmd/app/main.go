package main

import (
	"fmt"
	"log/slog"
	"os"

	"marketplace/cmd"
	apihttp "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/natsnotifier"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	stan "github.com/nats-io/stan.go"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	sc, err := stan.Connect(configs.NatsClusterID, configs.NatsClientID, stan.NatsURL(configs.NatsURL))
	if err != nil {
		log.Fatalf("Error connecting to NATS Streaming: %v", err)
	}
	defer sc.Close()

	notifier, err := natsnotifier.NewNotifier(
		sc, configs.NatsNotificationsSubject, configs.NatsOrdersSubject, logger)
	if err != nil {
		log.Fatalf("Error creating notifier: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, notifier, logger)
	if err != nil {
		log.Fatalf("Error composing application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		MarketplaceAPIURL:        goDotEnvVariable("MARKETPLACE_API_URL"),
		MarketplaceAPIToken:      goDotEnvVariable("MARKETPLACE_API_TOKEN"),
		NatsURL:                  goDotEnvVariable("NATS_URL"),
		NatsClusterID:            goDotEnvVariable("NATS_CLUSTER_ID"),
		NatsClientID:             goDotEnvVariable("NATS_CLIENT_ID"),
		NatsNotificationsSubject: goDotEnvVariable("NATS_NOTIFICATIONS_SUBJECT"),
		NatsOrdersSubject:        goDotEnvVariable("NATS_ORDERS_SUBJECT"),
		SettlementSchedule:       goDotEnvVariable("SETTLEMENT_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := apihttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateRespondCommandHandler(),
		app.CreateStartWorkCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateRateExecutorCommandHandler(),
		app.CreateWithdrawCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetParticipantRatingQueryHandler(),
		app.CreateGetFinancesQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
