package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/livrocaixa/backend/docs"
	"github.com/livrocaixa/backend/internal/audit"
	"github.com/livrocaixa/backend/internal/config"
	"github.com/livrocaixa/backend/internal/database"
	"github.com/livrocaixa/backend/internal/handlers"
	"github.com/livrocaixa/backend/internal/logger"
	"github.com/livrocaixa/backend/internal/services"
	"github.com/spf13/viper"
)

// @title Livro Caixa Ledger API
// @version 1.0
// @description Chart of accounts and double-entry manual postings
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	configErr := config.Init()

	logCfg := config.LoadLogConfig()
	log := logger.New(logCfg.Level, logCfg.Pretty)
	if configErr != nil {
		log.Info().Err(configErr).Msg("Config file not found, using defaults")
	}

	serverCfg := config.LoadServerConfig()
	ledgerCfg := config.LoadLedgerConfig()

	docs.SwaggerInfo.Host = viper.GetString("swagger.host")

	secret := viper.GetString("jwt.secret_key")
	if secret == "" {
		log.Fatal().Msg("JWT_SECRET_KEY is required")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStartup()

	dbCfg := database.GetConfig()
	db, err := database.Open(startupCtx, dbCfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if dbCfg.ApplySchema {
		if err := database.EnsureSchema(startupCtx, db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply schema")
		}
		log.Info().Msg("Schema applied")
	}

	redisClient := database.InitRedis(startupCtx, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	auditLog := audit.NewLogger(log)
	ledgerService := services.NewDoubleLedgerService(db, redisClient, ledgerCfg, auditLog)
	accountService := services.NewAccountService(db, auditLog)

	router := handlers.NewRouter(handlers.RouterConfig{
		Log:            log,
		JWTSecret:      []byte(secret),
		AllowedOrigins: serverCfg.AllowedOrigins,
		RequestTimeout: serverCfg.RequestTimeout,
		StaticDir:      viper.GetString("server.static_dir"),
	}, handlers.NewLedgerHandler(ledgerService, accountService), handlers.NewAccountHandler(accountService))

	server := &http.Server{
		Addr:         ":" + serverCfg.Port,
		Handler:      router,
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("strategy", ledgerCfg.PostingStrategy).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
