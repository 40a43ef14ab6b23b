package main // Entry point package

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/maikra/bounce-booking/internal/config"
	"github.com/maikra/bounce-booking/internal/database"
	"github.com/maikra/bounce-booking/internal/handler"
	"github.com/maikra/bounce-booking/internal/logger"
	"github.com/maikra/bounce-booking/internal/middleware"
	"github.com/maikra/bounce-booking/internal/queue"
	"github.com/maikra/bounce-booking/internal/repository"
	"github.com/maikra/bounce-booking/internal/router"
	"github.com/maikra/bounce-booking/internal/validator"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	logger.Setup(os.Getenv("LOG_LEVEL"))

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		logrus.WithError(err).Fatal("schema bootstrap failed")
	}

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Warn("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer writing the booking event feed to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			logrus.WithError(err).Warn("booking consumer stopped")
		}
	}()

	repo := repository.NewBookingRepo(db)
	bookings := &handler.BookingHandler{
		Repo:         repo,
		Validator:    validator.NewBookingValidator(),
		PublishEvent: queue.PublishBookingEvent,
	}
	calendar := &handler.CalendarHandler{Repo: repo}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = handler.NewRenderer()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e, bookings, calendar)

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
