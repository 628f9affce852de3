package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration
type Config struct {
	Port        string
	Environment string
	CORSOrigins []string

	// Commerce API (remote catalog backend)
	CommerceAPIURL     string
	CommerceAPIVersion string
	CommerceTimeout    time.Duration
	CommerceRetries    int

	// Storefront session defaults, injected into every outbound query
	Currency string
	Language string
	Country  string

	ListingPageSize int
	SessionTTL      time.Duration

	// SQLite snapshot store (last known-good listings)
	SQLitePath string

	// Admin auth
	JWTSecret     string
	JWTTTL        time.Duration
	AdminUsername string
	AdminPassword string

	// Redis (optional)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      int // seconds
	UseCache      bool

	// Kafka (optional)
	KafkaBrokers         []string
	KafkaTopicCatalog    string
	KafkaTopicStorefront string
	KafkaGroupID         string
	UseKafka             bool
}

// Load reads the given env files (".env" when none is passed) and then the
// process environment. Missing files are not an error.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		_ = godotenv.Load(file)
	}

	return &Config{
		Port:        getEnv("PORT", "8082"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", nil),

		CommerceAPIURL:     strings.TrimRight(getEnv("COMMERCE_API_URL", "http://localhost:9000"), "/"),
		CommerceAPIVersion: getEnv("COMMERCE_API_VERSION", "v1"),
		CommerceTimeout:    getEnvAsDuration("COMMERCE_TIMEOUT", 5*time.Second),
		CommerceRetries:    getEnvAsInt("COMMERCE_RETRIES", 3),

		Currency: getEnv("STORE_CURRENCY", "GBP"),
		Language: getEnv("STORE_LANGUAGE", "en-GB"),
		Country:  getEnv("STORE_COUNTRY", "GB"),

		ListingPageSize: getEnvAsInt("LISTING_PAGE_SIZE", 20),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 30*time.Minute),

		SQLitePath: getEnv("SQLITE_PATH", "./storefront.db"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production-min-32-chars!!"),
		JWTTTL:        getEnvAsDuration("JWT_TTL", 10*time.Minute),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsInt("CACHE_TTL", 60),
		UseCache:      getEnvAsBool("USE_CACHE", false),

		KafkaBrokers:         getEnvAsList("KAFKA_BROKERS", []string{"localhost:9093"}),
		KafkaTopicCatalog:    getEnv("KAFKA_TOPIC_CATALOG", "catalog.events"),
		KafkaTopicStorefront: getEnv("KAFKA_TOPIC_STOREFRONT", "storefront.events"),
		KafkaGroupID:         getEnv("KAFKA_GROUP_ID", "storefront-listing"),
		UseKafka:             getEnvAsBool("USE_KAFKA", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnvAsInt(key string, defaultValue int) int {
	result, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return result
}

// getEnvAsDuration accepts Go durations ("5s") or plain seconds ("5").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
