package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/getsplitx/splitx.go/db"
	"github.com/getsplitx/splitx.go/db/migrations"
	"github.com/getsplitx/splitx.go/lib/logging"
	"github.com/getsplitx/splitx.go/lib/service"
	"github.com/getsplitx/splitx.go/lib/transport"
	"github.com/getsplitx/splitx.go/rabbitmq"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/uptrace/bun/migrate"
)

// @title        Split-X
// @version      1.0.0
// @description  Expense splitting ledger with settlement links and debt reminders.

// @BasePath  /

// @schemes  https http
func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// If no RABBITMQ_URI was provided we will not attempt to create a client
	// and background tasks run over the in-process queue instead.
	var rabbitmqClient rabbitmq.Client
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
		if err != nil {
			logger.Fatal(err)
		}

		defer amqpClient.Close()

		rabbitmqClient, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithTaskExchange(c.RabbitMQTaskExchange),
			rabbitmq.WithTaskConsumerQueueName(c.RabbitMQTaskQueueName),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// close the connection gently at the end of the runtime
		defer rabbitmqClient.Close()
	}

	pubSub := service.NewPubsub()
	svc := &service.SplitxService{
		Config:         c,
		DB:             dbConn,
		Logger:         logger,
		Membership:     service.NewDBMembership(dbConn),
		Notifier:       &service.PubsubNotifier{PubSub: pubSub},
		EventPubSub:    pubSub,
		RabbitMQClient: rabbitmqClient,
	}
	svc.InitTaskQueue(0)

	//init echo server
	e := transport.InitEcho(c, logger)

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for requests that move money
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	transport.RegisterEndpoints(svc, e, strictRateLimitMiddleware, logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	// Consume expense-status and mail tasks in the background
	backgroundWg.Add(1)
	go func() {
		err = svc.StartTaskConsumerRoutine(backGroundCtx)
		if err != nil {
			sentry.CaptureException(err)
			//we want to restart in case of an error here
			svc.Logger.Fatal(err)
		}
		svc.Logger.Info("Task consumer routine done")
		backgroundWg.Done()
	}()

	//Start webhook subscription
	if svc.Config.WebhookUrl != "" {
		backgroundWg.Add(1)
		go func() {
			svc.StartWebhookSubscription(backGroundCtx, svc.Config.WebhookUrl)
			svc.Logger.Info("Webhook routine done")
			backgroundWg.Done()
		}()
	}

	//Start periodic debt reminder sweep
	if svc.Config.EnableReminderSweep {
		backgroundWg.Add(1)
		go func() {
			svc.StartReminderSweepRoutine(backGroundCtx)
			svc.Logger.Info("Reminder sweep routine done")
			backgroundWg.Done()
		}()
	}

	//Start Prometheus server if necessary
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	//Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("Split-X exiting gracefully. Goodbye.")
}
