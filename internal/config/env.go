package config

import (
	"log"
	"os"
	"strings"
	"time"

	"busdepot/internal/domain"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

type Env struct {
	AppAddr string
	GinMode string

	StoreDriver  string
	MongoURI     string
	MongoDB      string
	MySQLDSN     string
	StoreTimeout time.Duration

	TripMatchMode domain.MatchMode
	ReceiptSecret string
	CORSOrigins   []string
}

// LoadEnv reads an optional .env file and then the process environment.
// Invalid values fall back to defaults with a warning.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to read .env: %v", err)
	}

	env := Env{
		AppAddr:       getenv("APP_ADDR", ":3000"),
		GinMode:       getenv("GIN_MODE", ""),
		StoreDriver:   strings.ToLower(getenv("STORE_DRIVER", StoreMongo)),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "busdb"),
		MySQLDSN:      getenv("MYSQL_DSN", "root:@tcp(127.0.0.1:3306)/busdb?parseTime=true&charset=utf8mb4&timeout=5s"),
		StoreTimeout:  5 * time.Second,
		TripMatchMode: domain.MatchLegacy,
		ReceiptSecret: getenv("RECEIPT_SECRET", "busdepot-receipt-secret-change-me"),
	}

	switch env.StoreDriver {
	case StoreMongo, StoreMySQL, StoreMemory:
	default:
		log.Printf("warning: unknown STORE_DRIVER %q, using %s", env.StoreDriver, StoreMongo)
		env.StoreDriver = StoreMongo
	}

	if raw := getenv("STORE_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			log.Printf("warning: invalid STORE_TIMEOUT %q, using %s", raw, env.StoreTimeout)
		} else {
			env.StoreTimeout = d
		}
	}

	if raw := getenv("TRIP_MATCH_MODE", ""); raw != "" {
		mode, err := domain.ParseMatchMode(raw)
		if err != nil {
			log.Printf("warning: %v, using %s", err, env.TripMatchMode)
		} else {
			env.TripMatchMode = mode
		}
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
