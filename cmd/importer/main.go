package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/2beens/workouttracker/internal/config"
	"github.com/2beens/workouttracker/internal/db"
	"github.com/2beens/workouttracker/internal/logging"
	"github.com/2beens/workouttracker/internal/metrics"
	"github.com/2beens/workouttracker/internal/notifications"
	"github.com/2beens/workouttracker/internal/sheets"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/workouts"
	"github.com/2beens/workouttracker/internal/workouts/importer"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting import ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	sourceType := flag.String("source", "local", "workout files source [local | drive]")
	sendEmail := flag.Bool("send-email", false, "send the import summary email when done")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      true,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "workouts-importer",
	})

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	otelShutdown, err := tracing.HoneycombSetup(honeycombEnabled, "workouts-importer")
	if err != nil {
		log.Fatalf("honeycomb setup: %s", err)
	}
	defer otelShutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		receivedSig := <-chOsInterrupt
		log.Warnf("signal [%s] received, aborting import ...", receivedSig)
		cancel()
	}()

	store := makeStore(ctx, cfg)
	defer store.Close()

	source := makeSource(ctx, cfg, *sourceType)

	var publisher workouts.SheetPublisher
	if cfg.SpreadsheetID != "" {
		credentials := googleCredentials()
		if credentials == nil {
			log.Warnln("google credentials not set, sheets mirror disabled. use WT_GOOGLE_CREDENTIALS")
		} else {
			sheetsPublisher, err := sheets.NewPublisher(ctx, credentials, cfg.SpreadsheetID, cfg.SpreadsheetTab)
			if err != nil {
				log.Fatalf("new sheets publisher: %s", err)
			}
			publisher = sheetsPublisher
		}
	}

	var notifier workouts.PushNotifier
	if *sendEmail {
		notifier = makeNotifier(cfg)
	}

	imp := importer.New(
		source, store,
		workouts.NewNormalizer(cfg.ValidWorkoutTypes),
		publisher, notifier,
		metrics.NewManager("workouts", "importer", prometheus.NewRegistry()),
	)

	summary, err := imp.Run(ctx)
	if err != nil {
		log.Errorf("import finished with errors: %s", err)
	}
	if summary != nil {
		fmt.Println(summary)
	}
	if err != nil {
		os.Exit(1)
	}
}

func makeStore(ctx context.Context, cfg *config.Config) workouts.Store {
	switch cfg.DBBackend {
	case "postgres":
		postgresPassword := os.Getenv("WT_POSTGRES_PASS")
		if postgresPassword == "" {
			log.Errorf("postgres password not set. use WT_POSTGRES_PASS")
		}
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: postgresPassword,
		})
		if err != nil {
			log.Fatalf("new db pool: %s", err)
		}
		return workouts.NewRepo(pool, cfg.StoreRoutes)
	case "sqlite":
		store, err := workouts.NewSQLiteStore(cfg.SQLitePath, cfg.StoreRoutes)
		if err != nil {
			log.Fatalf("new sqlite store: %s", err)
		}
		return store
	default:
		log.Fatalf("unknown db backend: %s", cfg.DBBackend)
		return nil
	}
}

func makeSource(ctx context.Context, cfg *config.Config, sourceType string) importer.Source {
	switch sourceType {
	case "local":
		source, err := importer.NewLocalFolderSource(cfg.SourceFolderPath, cfg.SourceFileExtension)
		if err != nil {
			log.Fatalf("new local folder source: %s", err)
		}
		return source
	case "drive":
		credentials := googleCredentials()
		if credentials == nil {
			log.Fatalf("google credentials not set, drive source needs them. use WT_GOOGLE_CREDENTIALS")
		}
		source, err := importer.NewDriveFolderSource(ctx, credentials, cfg.DriveFolderID)
		if err != nil {
			log.Fatalf("new drive folder source: %s", err)
		}
		return source
	default:
		log.Fatalf("unknown source type: %s", sourceType)
		return nil
	}
}

func makeNotifier(cfg *config.Config) workouts.PushNotifier {
	smtpPassword := os.Getenv("WT_SMTP_PASS")
	if smtpPassword == "" {
		log.Fatalf("smtp password not set. use WT_SMTP_PASS")
	}
	smtpPort := 587
	if cfg.SMTPPort != "" {
		parsed, err := strconv.Atoi(cfg.SMTPPort)
		if err != nil {
			log.Fatalf("invalid smtp port: %s", cfg.SMTPPort)
		}
		smtpPort = parsed
	}
	return notifications.NewEmailNotifier(
		cfg.SMTPHost, smtpPort,
		cfg.EmailSender, smtpPassword, cfg.EmailRecipient,
	)
}

func googleCredentials() []byte {
	credsPath := os.Getenv("WT_GOOGLE_CREDENTIALS")
	if credsPath == "" {
		return nil
	}
	credentials, err := os.ReadFile(credsPath)
	if err != nil {
		log.Fatalf("read google credentials file %s: %s", credsPath, err)
	}
	return credentials
}
