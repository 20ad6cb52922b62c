package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/bankist/bankist-service/internal/config"
	"github.com/bankist/bankist-service/internal/handler"
	"github.com/bankist/bankist-service/internal/ledger"
	"github.com/bankist/bankist-service/internal/middleware"
	"github.com/bankist/bankist-service/internal/scheduler"
	"github.com/bankist/bankist-service/internal/service"
	"github.com/bankist/bankist-service/internal/session"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize layers
	led := ledger.New()
	if err := ledger.Seed(led); err != nil {
		logger.Fatalf("Failed to seed demo accounts: %v", err)
	}
	sessions := session.NewManager(cfg.SessionTTL)
	loans := scheduler.New(cfg.LoanDelay, nil, logger)
	svc := service.NewService(led, sessions, loans, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/logout", h.Logout).Methods("POST")
	authRouter.HandleFunc("/movements", h.Movements).Methods("GET")
	authRouter.HandleFunc("/balance", h.Balance).Methods("GET")
	authRouter.HandleFunc("/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/transfer", h.Transfer).Methods("POST")
	authRouter.HandleFunc("/loan", h.RequestLoan).Methods("POST")
	authRouter.HandleFunc("/account", h.CloseAccount).Methods("DELETE")

	// Background jobs: idle-session sweep and a server clock heartbeat
	c := cron.New()
	c.AddFunc("@every 30s", svc.ExpireSessions)
	c.AddFunc("@every 10s", func() {
		logger.Debugf("Server time: %s", time.Now().Format(time.RFC1123))
	})
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
