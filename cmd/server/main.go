package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/auction-api/internal/config"
	"github.com/Skotchmaster/auction-api/internal/es"
	"github.com/Skotchmaster/auction-api/internal/handlers"
	"github.com/Skotchmaster/auction-api/internal/logging"
	loggingmw "github.com/Skotchmaster/auction-api/internal/middleware/logging"
	"github.com/Skotchmaster/auction-api/internal/mykafka"
	"github.com/Skotchmaster/auction-api/internal/repository"
	httpserver "github.com/Skotchmaster/auction-api/internal/transport/http"
	"github.com/Skotchmaster/auction-api/internal/validation"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	searchHandler := &handlers.SearchHandler{Index: "products"}
	if configuration.ES_URL != "" {
		client, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler.ES = client
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	bids := repository.NewBidRepo(db)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Validator = validation.New()

	deps := httpserver.Deps{
		DB:        db,
		JWTSecret: jwtSecret,
		AuthHandler: &handlers.AuthHandler{
			Users:     users,
			JWTSecret: jwtSecret,
			Producer:  producer,
		},
		ProductHandler: &handlers.ProductHandler{
			Products: products,
			Producer: producer,
			ES:       searchHandler.ES,
			ESIndex:  searchHandler.Index,
		},
		BidHandler: &handlers.BidHandler{
			Bids:     bids,
			Products: products,
			Producer: producer,
		},
		UserHandler:   &handlers.UserHandler{Users: users},
		SearchHandler: searchHandler,
		DevHandler:    &handlers.DevHandler{DB: db},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
