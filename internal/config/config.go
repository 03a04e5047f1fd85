package config

import (
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Europe/Helsinki"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Booking struct {
		URL      string `env:"BOOKING_API_URL"`
		Username string `env:"BOOKING_API_USERNAME"`
		Password string `env:"BOOKING_API_PASSWORD"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"slots_generator:slots_generator"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMq struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri string `env:"RABBITMQ_URL"`

		QueueConfig struct {
			BookingQueueName     string `env:"RABBITMQ_BOOKING_QUEUE" envDefault:"slots-generator.booking"`
			BookingQueueBind     string `env:"RABBITMQ_BOOKING_QUEUE_BIND" envDefault:"booking.slots-generator.#"`
			BookingQueueExchange string `env:"RABBITMQ_BOOKING_QUEUE_EXCHANGE" envDefault:"amq.topic"`
		}
	}

	Cache struct {
		Enabled         bool `env:"CACHE_ENABLED"`
		SlotsSize       int  `env:"CACHE_SLOTS_SIZE" envDefault:"1000"`
		SlotsTtlSeconds int  `env:"CACHE_SLOTS_TTL_SECONDS" envDefault:"300"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Приведение окружения к нижнему регистру для унификации
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// Разбираем список клиентов basic-авторизации вида user:pass,user:pass
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Без RabbitMQ кэш не включаем: события инвалидации броней не придут
	// и кэш будет отдавать занятые слоты как свободные
	if !cfg.RabbitMq.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
