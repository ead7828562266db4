package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"jobsheet-service/internal/auth"
	"jobsheet-service/internal/config"
	"jobsheet-service/internal/db"
	httphandler "jobsheet-service/internal/http"
	"jobsheet-service/internal/http/middleware"
	"jobsheet-service/internal/lifecycle"
	"jobsheet-service/internal/logger"
	"jobsheet-service/internal/repository"
	"jobsheet-service/internal/service"
	"jobsheet-service/internal/store"
	firestorestore "jobsheet-service/internal/store/firestore"
	"jobsheet-service/internal/store/gormstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	documents, closeStore, err := openStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to open store")
	}
	defer closeStore()

	sheetRepo := repository.NewJobSheetRepository(documents)
	companyRepo := repository.NewCompanyRepository(documents)
	counterRepo := repository.NewCounterRepository(documents)
	documentRepo := repository.NewDocumentRepository(documents)
	partRepo := repository.NewPartRepository(documents)
	quoteRepo := repository.NewQuoteRepository(documents)
	profileRepo := repository.NewUserProfileRepository(documents)

	numbering := service.NewNumberingService(documents, counterRepo)
	jobSheetService := service.NewJobSheetService(documents, sheetRepo, companyRepo, numbering, lifecycle.NewPolicy())
	documentService := service.NewDocumentService(sheetRepo, documentRepo)
	partService := service.NewPartService(sheetRepo, partRepo)
	companyService := service.NewCompanyService(companyRepo)
	quoteService := service.NewQuoteService(documents, quoteRepo, companyRepo, numbering, cfg.Quotes.Validity)
	userService := service.NewUserService(profileRepo)

	scheduler, err := service.NewQuoteExpiryScheduler(quoteService, cfg.Quotes.ExpirySchedule, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to create quote expiry scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(
		jobSheetService,
		documentService,
		partService,
		companyService,
		quoteService,
		userService,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	appLogger.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Msg("starting jobsheet service")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
	appLogger.Info().Msg("jobsheet service stopped")
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, func(), error) {
	if cfg.Store.Driver == config.StoreDriverFirestore {
		client, err := firestorestore.New(ctx, cfg.Store.FirestoreProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("connect firestore: %w", err)
		}
		log.Info().Str("project", cfg.Store.FirestoreProjectID).Msg("firestore ready")
		return client, func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close firestore client")
			}
		}, nil
	}

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return gormstore.New(database), func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
