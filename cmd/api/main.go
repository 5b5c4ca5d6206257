package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/config"
	"github.com/iamasit07/connect4-minimax/internal/event"
	"github.com/iamasit07/connect4-minimax/internal/repository/postgres"
	"github.com/iamasit07/connect4-minimax/internal/repository/redis"
	"github.com/iamasit07/connect4-minimax/internal/service/cleanup"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/internal/service/simulation"
	transportHttp "github.com/iamasit07/connect4-minimax/internal/transport/http"
	"github.com/iamasit07/connect4-minimax/internal/transport/websocket"
	"github.com/iamasit07/connect4-minimax/pkg/auth"
	"github.com/joho/godotenv"
)

func main() {
	hashKey := flag.Bool("hash-admin-key", false, "read an admin key from stdin, print its ADMIN_KEY_HASH and exit")
	flag.Parse()

	if *hashKey {
		if err := printAdminKeyHash(os.Stdin, os.Stdout); err != nil {
			log.Fatalf("hash-admin-key: %v", err)
		}
		return
	}

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 1. Optional infrastructure; each piece degrades to in-memory behaviour
	var db *sql.DB
	var reportStore simulation.ReportStore
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.InitDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Printf("[DB] Warning: %v. Simulation reports will not be persisted.", err)
		} else {
			defer db.Close()
			reportStore = postgres.NewSimulationRepo(db)
		}
	}

	var reportCache simulation.ReportCache
	if cfg.RedisURL != "" {
		if client := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword); client != nil {
			defer client.Close()
			reportCache = redis.NewReportCache(client, cfg.ReportCacheTTL)
		}
	}

	var producer *event.Producer
	var gamePublisher game.GameOverPublisher
	var simPublisher simulation.CompletionPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p, err := event.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Printf("[KAFKA] Warning: Could not create producer: %v. Events are disabled.", err)
		} else {
			producer = p
			defer producer.Close()
			gamePublisher, simPublisher = producer, producer
		}
	}

	// 2. Services
	sessionManager := game.NewSessionManager(game.Options{
		Geometry:    cfg.Geometry,
		BotDelay:    cfg.BotMoveDelay,
		IdleTTL:     cfg.SessionIdle,
		MaxSessions: cfg.MaxLiveGames,
	}, gamePublisher)

	simService := simulation.NewService(simulation.Runner{
		Geometry: cfg.Geometry,
		MinDepth: cfg.SimMinDepth,
		MaxDepth: cfg.SimMaxDepth,
		Workers:  cfg.SimWorkers,
	}, reportStore, reportCache, simPublisher)

	signer := auth.NewSigner(cfg.JWTSecret, cfg.GameTokenTTL)
	connManager := websocket.NewConnectionManager()

	// 3. Background workers
	cleanup.NewWorker(sessionManager, time.Minute).Start(ctx)

	// 4. Transport
	wsHandler := websocket.NewHandler(connManager, sessionManager, signer, cfg.AllowedOrigins)
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		AdminKeyHash:   cfg.AdminKeyHash,
		Engine:         transportHttp.NewEngineHandler(cfg.Geometry),
		Games:          transportHttp.NewGameHandler(sessionManager, signer, cfg.DefaultDepth),
		Watch:          transportHttp.NewWatchHandler(sessionManager),
		Simulation:     transportHttp.NewSimulationHandler(simService),
		WebSocket:      wsHandler.HandleWebSocket,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (board %dx%d)", cfg.Port, cfg.Geometry.Rows, cfg.Geometry.Columns)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}

// printAdminKeyHash reads the key from the first line of in so it never shows up in
// shell history.
func printAdminKeyHash(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return errors.New("admin key must not be empty")
	}

	hash, err := auth.HashAdminKey(key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
