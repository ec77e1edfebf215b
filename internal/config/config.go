package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	MongoURI                    string
	MongoDatabase               string
	MongoMinPoolSize            uint64
	MongoMaxPoolSize            uint64
	MongoServerSelectionTimeout time.Duration
	MongoSocketTimeout          time.Duration
	MongoConnectTimeout         time.Duration

	SessionTTL           time.Duration
	SessionPurgeInterval time.Duration
	CookieName           string
}

func Load() Config {
	return Config{
		HTTPAddr:                    getenv("HTTP_ADDR", ":8080"),
		MongoURI:                    getenv("MONGODB_URI", ""),
		MongoDatabase:               getenv("MONGODB_DB_NAME", "looma-dashboard"),
		MongoMinPoolSize:            getenvUint("MONGODB_MIN_POOL_SIZE", 5),
		MongoMaxPoolSize:            getenvUint("MONGODB_MAX_POOL_SIZE", 10),
		MongoServerSelectionTimeout: getenvDuration("MONGODB_SERVER_SELECTION_TIMEOUT", 5*time.Second),
		MongoSocketTimeout:          getenvDuration("MONGODB_SOCKET_TIMEOUT", 45*time.Second),
		MongoConnectTimeout:         getenvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SessionTTL:                  getenvDuration("SESSION_TTL", 7*24*time.Hour),
		SessionPurgeInterval:        getenvDuration("SESSION_PURGE_INTERVAL", time.Hour),
		CookieName:                  getenv("SESSION_COOKIE_NAME", "looma_session"),
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvUint(key string, fallback uint64) uint64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
