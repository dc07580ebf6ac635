package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/junaidrashid-git/rivaleats-api/checkout"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins []string

	DatabaseURL string

	JWTSecret       string
	AdminAPIKey     string
	SuperAdminEmail string

	FirebaseCredentialsJSON string
	FirebaseProjectID       string

	RabbitMQURL     string
	RabbitMQQueue   string
	ChannelPoolSize int

	BusinessTimezone string
	DeliveryFee      decimal.Decimal
	OutsideZoneFee   decimal.Decimal
	CutoffWeekday    time.Weekday
	CutoffHour       int
	PostalPrefixes   []string
	InZoneCounty     string
	InZoneState      string
	TimeWindows      []string
}

// Load reads .env (when present) and the process environment. Invalid
// business settings are reported as errors; infrastructure settings fall
// back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	defaults := checkout.DefaultRules()

	deliveryFee, err := getEnvAsDecimal("DELIVERY_FEE", defaults.DeliveryFee)
	if err != nil {
		return nil, err
	}
	outsideFee, err := getEnvAsDecimal("OUTSIDE_ZONE_FEE", defaults.OutsideZoneFee)
	if err != nil {
		return nil, err
	}
	weekday, err := parseWeekday(getEnv("CUTOFF_WEEKDAY", "friday"))
	if err != nil {
		return nil, err
	}
	cutoffHour, err := strconv.Atoi(getEnv("CUTOFF_HOUR", strconv.Itoa(defaults.CutoffHour)))
	if err != nil {
		return nil, fmt.Errorf("CUTOFF_HOUR: %w", err)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "release"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}, "|"),

		DatabaseURL: databaseURL(),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminAPIKey:     os.Getenv("ADMIN_API_KEY"),
		SuperAdminEmail: strings.ToLower(strings.TrimSpace(os.Getenv("SUPER_ADMIN_EMAIL"))),

		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),

		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		RabbitMQQueue:   getEnv("RABBITMQ_QUEUE", "rivaleats_events"),
		ChannelPoolSize: getEnvAsInt("CHANNEL_POOL_SIZE", 5),

		BusinessTimezone: getEnv("BUSINESS_TIMEZONE", "America/New_York"),
		DeliveryFee:      deliveryFee,
		OutsideZoneFee:   outsideFee,
		CutoffWeekday:    weekday,
		CutoffHour:       cutoffHour,
		PostalPrefixes:   getEnvAsList("IN_ZONE_POSTAL_PREFIXES", defaults.InZonePostalPrefixes, ","),
		InZoneCounty:     strings.ToLower(getEnv("IN_ZONE_COUNTY", defaults.InZoneCounty)),
		InZoneState:      strings.ToLower(getEnv("IN_ZONE_STATE", defaults.InZoneState)),
		TimeWindows:      getEnvAsList("TIME_WINDOWS", defaults.TimeWindows, "|"),
	}, nil
}

// Rules builds the checkout rules and validates them.
func (c *Config) Rules() (checkout.Rules, error) {
	rules := checkout.Rules{
		DeliveryFee:          c.DeliveryFee,
		OutsideZoneFee:       c.OutsideZoneFee,
		CutoffWeekday:        c.CutoffWeekday,
		CutoffHour:           c.CutoffHour,
		InZonePostalPrefixes: c.PostalPrefixes,
		InZoneCounty:         c.InZoneCounty,
		InZoneState:          c.InZoneState,
		TimeWindows:          c.TimeWindows,
	}
	if err := rules.Validate(); err != nil {
		return checkout.Rules{}, err
	}
	return rules, nil
}

// Location resolves the business time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("BUSINESS_TIMEZONE %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}

// DatabaseConfigured reports whether an order store should be opened.
// Without one the API runs in dry-run mode.
func (c *Config) DatabaseConfigured() bool {
	return c.DatabaseURL != ""
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSL_MODE", "disable"),
	)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("CUTOFF_WEEKDAY: unknown weekday %q", s)
	}
	return d, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func getEnvAsList(key string, defaultValue []string, sep string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(valueStr, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
