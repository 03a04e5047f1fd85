package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"bookable-slots-generator/internal/adapters/in/http"
	"bookable-slots-generator/internal/adapters/in/rabbitmq"
	"bookable-slots-generator/internal/adapters/out/booking"
	"bookable-slots-generator/internal/adapters/out/cache"
	"bookable-slots-generator/internal/adapters/out/logger"
	"bookable-slots-generator/internal/config"
	"bookable-slots-generator/internal/core/ports/out"
	"bookable-slots-generator/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	bookingAdapter := booking.NewBookingAdapter(cfg, mainLogger.WithModule("BookingAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	// Инициализация сервиса
	slotGeneratorService := services.NewSlotGeneratorService(
		bookingAdapter,
		cacheAdapter,
		cfg,
		mainLogger,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewSlotGeneratorController(slotGeneratorService, cfg)
	controller.RegisterRoutes(router)

	// Слушатель событий броней только если RabbitMQ включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewBookingEventListener(
			slotGeneratorService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		log.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"booking": map[string]string{
					"url":      cfg.Booking.URL,
					"username": cfg.Booking.Username,
				},
				"rabbitmq": map[string]interface{}{
					"enabled": cfg.RabbitMq.Enabled,
					"queue":   cfg.RabbitMq.QueueConfig.BookingQueueName,
				},
				"cache": map[string]interface{}{
					"enabled":     cfg.Cache.Enabled,
					"slots_size":  cfg.Cache.SlotsSize,
					"ttl_seconds": cfg.Cache.SlotsTtlSeconds,
				},
			},
		})
	}
}
