package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Booking  BookingConfig
	Notifier NotifierConfig
	Sweeper  SweeperConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	BaseURL  string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr              string
	Password          string
	DB                int
	RateLimit         int
	RateWindowSeconds int
}

type BookingConfig struct {
	HoldMinutes   int
	LeadTimeHours int
	MaxGuestCount int
}

type NotifierConfig struct {
	Driver      string // "twilio", "amqp" or "log"
	TwilioSID   string
	TwilioToken string
	TwilioFrom  string
	AMQPURL     string
	AMQPQueue   string
}

type SweeperConfig struct {
	Spec string
}

type AdminConfig struct {
	KeyHash string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("TIMEZONE", "Asia/Tokyo")
	viper.SetDefault("HOLD_MINUTES", 20)
	viper.SetDefault("LEAD_TIME_HOURS", 2)
	viper.SetDefault("MAX_GUEST_COUNT", 6)
	viper.SetDefault("NOTIFIER_DRIVER", "log")
	viper.SetDefault("AMQP_QUEUE", "reservation.notifications")
	viper.SetDefault("SWEEPER_SPEC", "@every 1m")
	viper.SetDefault("RATE_LIMIT", 30)
	viper.SetDefault("RATE_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			BaseURL:  viper.GetString("BASE_URL"),
			Timezone: viper.GetString("TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:              viper.GetString("REDIS_ADDR"),
			Password:          viper.GetString("REDIS_PASSWORD"),
			DB:                viper.GetInt("REDIS_DB"),
			RateLimit:         viper.GetInt("RATE_LIMIT"),
			RateWindowSeconds: viper.GetInt("RATE_WINDOW_SECONDS"),
		},
		Booking: BookingConfig{
			HoldMinutes:   viper.GetInt("HOLD_MINUTES"),
			LeadTimeHours: viper.GetInt("LEAD_TIME_HOURS"),
			MaxGuestCount: viper.GetInt("MAX_GUEST_COUNT"),
		},
		Notifier: NotifierConfig{
			Driver:      viper.GetString("NOTIFIER_DRIVER"),
			TwilioSID:   viper.GetString("TWILIO_ACCOUNT_SID"),
			TwilioToken: viper.GetString("TWILIO_AUTH_TOKEN"),
			TwilioFrom:  viper.GetString("TWILIO_PHONE_NUMBER"),
			AMQPURL:     viper.GetString("AMQP_URL"),
			AMQPQueue:   viper.GetString("AMQP_QUEUE"),
		},
		Sweeper: SweeperConfig{
			Spec: viper.GetString("SWEEPER_SPEC"),
		},
		Admin: AdminConfig{
			KeyHash: viper.GetString("ADMIN_KEY_HASH"),
		},
	}

	return config, nil
}
