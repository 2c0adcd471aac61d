package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"miniblog/internal/auth"
	"miniblog/internal/models"
	"miniblog/internal/session"
	"miniblog/internal/store"
	"miniblog/internal/web"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Database connection
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=miniblog port=5432 sslmode=disable"
	}

	// The session-signing secret is a deployment secret with no sane default
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("SESSION_SECRET must be set")
	}

	// Configure GORM logger to ignore "record not found" errors
	// Lookups by email/id treat not-found as normal absence
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	sessions := session.NewManager(db, secret)
	authService := auth.NewService(users)

	// Sweep expired sessions; Resolve already treats expired rows as
	// absent, this just keeps the table from growing
	go func() {
		for range time.Tick(time.Hour) {
			if err := sessions.DeleteExpired(); err != nil {
				log.Printf("Failed to delete expired sessions: %v", err)
			}
		}
	}()

	srv := web.NewServer(users, posts, sessions, authService)

	// Start HTTP server
	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	log.Printf("Starting HTTP server on 0.0.0.0:%s", httpPort)

	if err := http.ListenAndServe("0.0.0.0:"+httpPort, srv); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
