package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	AppPort        string
	AllowedOrigins string

	StoreDriver     string
	DBFile          string
	CreateIfMissing bool
	SQLitePath      string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBMaxIdleConns  int
	DBMaxOpenConns  int
	MongoURI        string
	MongoDB         string

	UploadDir       string
	UploadURLPrefix string

	NatsURL string

	JWTSecret          string
	JWTExpirationHours int
	HashPasswords      bool
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Invalid boolean value for %s, defaulting to %t", key, defaultValue)
	}
	return defaultValue
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; variables already set in
// the environment win.
func Load() Config {
	log.Println("Loading configuration...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env file: %v", err)
	}

	return Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		AppPort:            getEnv("APP_PORT", "3000"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		StoreDriver:        getEnv("STORE_DRIVER", "file"),
		DBFile:             getEnv("DB_FILE", "db.json"),
		CreateIfMissing:    getEnvAsBool("CREATE_IF_MISSING", true),
		SQLitePath:         getEnv("SQLITE_PATH", "notes.db"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "notes"),
		DBPassword:         getEnv("DB_PASSWORD", "notes"),
		DBName:             getEnv("DB_NAME", "notes"),
		DBMaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getEnv("MONGO_DB", "notes"),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		UploadURLPrefix:    getEnv("UPLOAD_URL_PREFIX", "/uploads"),
		NatsURL:            getEnv("NATS_URL", ""),
		JWTSecret:          getEnv("JWT_SECRET", "your-super-secret-key-change-this-in-production"),
		JWTExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		HashPasswords:      getEnvAsBool("HASH_PASSWORDS", false),
	}
}
