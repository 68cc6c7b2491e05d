package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/annavogt-hci/ascend/internal/export"
	"github.com/annavogt-hci/ascend/internal/game"
	"github.com/annavogt-hci/ascend/internal/store"
	"github.com/annavogt-hci/ascend/internal/ws"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := openDB()
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	plays := store.NewGormPlayStore(db)
	if err := plays.Migrate(); err != nil {
		logger.Fatal("failed to migrate plays table", zap.Error(err))
	}

	sessions := store.NewSessionStore()
	engine := game.NewEngine(sessions, plays, logger)
	hub := ws.NewHub(engine, logger)

	port := getenv("PORT", "8080")
	publicURL := getenv("PUBLIC_URL", "http://localhost:"+port)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.Handle("/admin/export/", export.NewHandler(plays, os.Getenv("EXPORT_SECRET"), logger))
	mux.Handle("/qr/", export.NewQRHandler(publicURL, sessions, logger))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	logger.Info("server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("DEBUG") != "" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openDB() (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	// local development fallback
	return gorm.Open(sqlite.Open("ascend.db"), &gorm.Config{})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
