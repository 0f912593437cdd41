package main

import (
	"github.com/NyuntSinHtet96/event-registeration-bot/config"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/consumer"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/handler"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/middleware"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/repository"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/service"
	"github.com/NyuntSinHtet96/event-registeration-bot/monitoring"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/database"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/logger"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.New("registration-service")

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional in development; without it the service simply
	// skips notifications and the event sync consumer.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect rabbitmq publisher")
		}
		defer publisher.Close()

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect rabbitmq consumer")
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start consuming event updates")
		}
		consumer.NewEventConsumer(db, log).Start(msgs)
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	regRepo := repository.NewRegistrationRepository(db)
	checkinRepo := repository.NewCheckinRepository(db)

	// Services
	regSvc := service.NewRegistrationService(regRepo, eventRepo, publisher, log)
	checkinSvc := service.NewCheckinService(checkinRepo, regRepo, eventRepo, publisher, log)
	eventSvc := service.NewEventService(eventRepo, regRepo, checkinRepo)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = middleware.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Info().Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Msg("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "registration-service"})
	})
	if cfg.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(monitoring.Handler()))
	}

	handler.NewEventHandler(eventSvc, checkinSvc).RegisterRoutes(e)
	handler.NewRegistrationHandler(regSvc).RegisterRoutes(e)
	handler.NewCheckinHandler(checkinSvc).RegisterRoutes(e)

	log.Info().Str("port", cfg.ServerPort).Msg("registration service starting")
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
