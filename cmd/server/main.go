/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the calendar heatmap server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse command-line flags
  2. Initialize SQLite store
  3. Load the render profile and auth credentials
  4. Create API handler, router and snapshot scheduler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port           HTTP server port (default: 8080, env: PORT)
  -db             SQLite database path (default: heatmap.db, env: DB_PATH)
                  Use ":memory:" for in-memory database
  -profile        Render profile YAML (default: built-in, env: PROFILE)
  -cron           Snapshot refresh schedule (default: 03:00 daily, env: SNAPSHOT_CRON)
  -auth-file      Basic Auth credentials file (default: auth.secret, env: AUTH_FILE)
  -demo           Seed a demo dataset on startup (commuter, burst)
  -hash-password  Create the auth file interactively and exit

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the snapshot scheduler
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/heatmap.db"

  # Run with a German profile and hourly refresh
  ./server -profile=profiles/de.yaml -cron="0 * * * *"

  # Create credentials for the mutating endpoints
  ./server -hash-password

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/warp/calendar-heatmap/api"
	"github.com/warp/calendar-heatmap/event"
	"github.com/warp/calendar-heatmap/profile"
	"github.com/warp/calendar-heatmap/store/sqlite"
)

func main() {
	// .env is optional; flags pick the values up via their env defaults
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	// Flags
	port := flag.Int("port", envIntOr("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envOr("DB_PATH", "heatmap.db"), "SQLite database path")
	profilePath := flag.String("profile", envOr("PROFILE", ""), "Render profile YAML (empty: built-in default)")
	cron := flag.String("cron", envOr("SNAPSHOT_CRON", api.DefaultSchedule), "Snapshot refresh schedule")
	authFile := flag.String("auth-file", envOr("AUTH_FILE", "auth.secret"), "Basic Auth credentials file")
	demo := flag.String("demo", "", "Seed a demo dataset on startup (commuter, burst)")
	hashPassword := flag.Bool("hash-password", false, "Create the auth file interactively and exit")
	flag.Parse()

	if *hashPassword {
		if err := createAuthFile(*authFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Seed demo data when asked; a second run against the same database
	// collides on the stable ids and is skipped
	if *demo != "" {
		evs, err := api.DemoEvents(*demo)
		if err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		switch err := store.AppendBatch(context.Background(), evs); {
		case err == nil:
			log.Printf("Seeded demo dataset %q (%d events)", *demo, len(evs))
		case errors.Is(err, event.ErrDuplicateEvent):
			log.Printf("Demo dataset %q already loaded", *demo)
		default:
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	// Load render profile
	prof, err := profile.Load(*profilePath)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}
	log.Printf("Using profile %q (locale: %s)", prof.Name, prof.LocaleCode)

	// Load auth credentials (missing file enables dev mode)
	auth, err := api.LoadAuth(*authFile)
	if err != nil {
		log.Fatalf("Failed to load auth file: %v", err)
	}

	// Initialize handler and router
	handler := api.NewHandler(store, store, prof)
	router := api.NewRouter(handler, auth)

	// Start the snapshot scheduler
	scheduler, err := api.NewSnapshotScheduler(handler, *cron)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📅 Calendar at http://localhost:%d/calendar", *port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	scheduler.Stop()

	log.Println("Server stopped")
}

// createAuthFile prompts for credentials and writes the auth file used by
// the Basic Auth middleware.
func createAuthFile(path string) error {
	fmt.Print("Enter username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if username == "" {
		return errors.New("username cannot be empty")
	}

	fmt.Print("Enter password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if len(password) == 0 {
		return errors.New("password cannot be empty")
	}
	if string(password) != string(confirm) {
		return errors.New("passwords do not match")
	}

	if err := api.WriteAuthFile(path, username, string(password)); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
