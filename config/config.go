package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Scheduling policy defaults. Per-business constraints override these;
	// a zero value stored on a business falls back to the default here.
	DefaultDurationMin      int `mapstructure:"DEFAULT_APPOINTMENT_DURATION_MIN"`
	DefaultBufferMin        int `mapstructure:"DEFAULT_BUFFER_MIN"`
	DefaultLeadTimeMin      int `mapstructure:"DEFAULT_LEAD_TIME_MIN"`
	DefaultCancelWindowMin  int `mapstructure:"DEFAULT_CANCELLATION_WINDOW_MIN"`
	DefaultMaxHoursPerDay   int `mapstructure:"DEFAULT_MAX_HOURS_PER_DAY"`
	DefaultMaxHoursPerWeek  int `mapstructure:"DEFAULT_MAX_HOURS_PER_WEEK"`
	BookingHorizonDays      int `mapstructure:"BOOKING_HORIZON_DAYS"`
	BusinessLockWaitSeconds int `mapstructure:"BUSINESS_LOCK_WAIT_SECONDS"`
	ReminderLeadMin         int `mapstructure:"REMINDER_LEAD_MIN"`
	SlotCacheTTLSeconds     int `mapstructure:"SLOT_CACHE_TTL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")

	// Defaults mirror the values the availability settings screen starts from.
	viper.SetDefault("DEFAULT_APPOINTMENT_DURATION_MIN", 60)
	viper.SetDefault("DEFAULT_BUFFER_MIN", 15)
	viper.SetDefault("DEFAULT_LEAD_TIME_MIN", 60)
	viper.SetDefault("DEFAULT_CANCELLATION_WINDOW_MIN", 24*60)
	viper.SetDefault("DEFAULT_MAX_HOURS_PER_DAY", 8)
	viper.SetDefault("DEFAULT_MAX_HOURS_PER_WEEK", 40)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 30)
	viper.SetDefault("BUSINESS_LOCK_WAIT_SECONDS", 3)
	viper.SetDefault("REMINDER_LEAD_MIN", 60)
	viper.SetDefault("SLOT_CACHE_TTL_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
