package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	CartTTL         time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	TagSweepEvery   time.Duration

	LiqPayPublicKey  string
	LiqPayPrivateKey string
	LiqPayHost       string
	LiqPayResultURL  string
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "marketplace"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CartTTL:         getDuration("CART_TTL", time.Hour),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		TagSweepEvery:   getDuration("TAG_SWEEP_EVERY", time.Hour),

		LiqPayPublicKey:  getEnv("LIQPAY_PUBLIC_KEY", ""),
		LiqPayPrivateKey: getEnv("LIQPAY_PRIVATE_KEY", ""),
		LiqPayHost:       getEnv("LIQPAY_HOST", ""),
		LiqPayResultURL:  getEnv("LIQPAY_RESULT_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
