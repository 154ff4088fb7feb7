package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/samudev/portfolio-backend/api"
	"github.com/samudev/portfolio-backend/auth"
	"github.com/samudev/portfolio-backend/blob"
	"github.com/samudev/portfolio-backend/config"
	"github.com/samudev/portfolio-backend/database"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()

	db, provider, err := buildBackend(cfg)
	if err != nil {
		fmt.Printf("Error initializing record store: %v\n", err)
		os.Exit(1)
	}

	session := auth.NewSession(provider, config.GetStrings(cfg, "ADMIN_EMAILS"))

	blobs, err := buildBlobStore(cfg)
	if err != nil {
		fmt.Printf("Error initializing blob store: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(db, blobs, session)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// buildBackend selects the record store backend once, from configuration:
// "live" connects to Postgres, anything else serves the static snapshot.
func buildBackend(cfg map[string]string) (database.Database, auth.Provider, error) {
	backend := config.GetString(cfg, "RECORD_BACKEND", "static")
	fmt.Printf("RECORD_BACKEND: %s\n", backend)

	if backend != "live" {
		snapshotPath := config.GetString(cfg, "STATIC_PROJECTS_PATH", "assets/data/projects.json")
		db, err := database.NewStatic(snapshotPath)
		if err != nil {
			return database.Database{}, nil, err
		}
		// the snapshot deployment has no admin surface; the noop
		// provider still fires the initial no-session state
		return db, auth.NoopProvider{}, nil
	}

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(cfg, "DB_HOST", "localhost"),
		config.GetString(cfg, "DB_USER", "postgres"),
		config.GetString(cfg, "DB_PASSWORD", ""),
		config.GetString(cfg, "DB_NAME", "portfolio"),
		config.GetString(cfg, "DB_PORT", "5432"),
		config.GetString(cfg, "DB_SSLMODE", "require"),
	)
	fmt.Println("Connecting to Postgres...")

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return database.Database{}, nil, fmt.Errorf("connecting to database: %w", err)
	}

	// route the read-heavy public endpoints to a replica when one is set
	if replicaDSN := config.GetString(cfg, "DB_REPLICA_DSN", ""); replicaDSN != "" {
		err = gormDB.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(replicaDSN)},
		}))
		if err != nil {
			return database.Database{}, nil, fmt.Errorf("registering read replica: %w", err)
		}
	}

	// Test database connection
	var result int
	if err := gormDB.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return database.Database{}, nil, fmt.Errorf("testing database connection: %w", err)
	}

	db, err := database.NewLive(gormDB)
	if err != nil {
		return database.Database{}, nil, err
	}

	return db, auth.NewGormProvider(db.Users()), nil
}

func buildBlobStore(cfg map[string]string) (blob.Store, error) {
	return blob.NewS3Store(context.Background(), blob.S3Config{
		Region:        config.GetString(cfg, "S3_REGION", "us-east-1"),
		Bucket:        config.GetString(cfg, "S3_BUCKET", "project-media"),
		AccessKey:     config.GetString(cfg, "S3_ACCESS_KEY", ""),
		SecretKey:     config.GetString(cfg, "S3_SECRET_KEY", ""),
		BaseEndpoint:  config.GetString(cfg, "S3_BASE_ENDPOINT", ""),
		PublicBaseURL: config.GetString(cfg, "S3_PUBLIC_BASE_URL", ""),
		Timeout:       time.Duration(config.GetInt(cfg, "S3_TIMEOUT_SECONDS", 30)) * time.Second,
	})
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
