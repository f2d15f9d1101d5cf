package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config contiene toda la configuración del servidor Guess Human
type Config struct {
	// Servidor
	Host string
	Port int

	// Oráculo (LLM)
	OracleProvider    string // "gemini", "openai" o "anthropic"
	OracleAPIKey      string
	OracleModel       string
	OracleBaseURL     string
	OracleTemperature float32
	OracleMaxTokens   int
	OracleTimeout     time.Duration

	// Juego
	MaxRounds int

	// Almacenamiento de sesiones
	SessionStore  string // "memory" o "redis"
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load carga la configuración desde variables de entorno (y .env si existe)
func Load() *Config {
	// Cargar .env si está presente; no es un error que falte
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Variables cargadas desde .env")
	}

	return &Config{
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnvInt("PORT", 8000),

		OracleProvider:    getEnv("ORACLE_PROVIDER", "gemini"),
		OracleAPIKey:      getEnv("ORACLE_API_KEY", ""),
		OracleModel:       getEnv("ORACLE_MODEL", ""),
		OracleBaseURL:     getEnv("ORACLE_BASE_URL", ""),
		OracleTemperature: float32(getEnvFloat("ORACLE_TEMPERATURE", 0.3)),
		OracleMaxTokens:   getEnvInt("ORACLE_MAX_TOKENS", 256),
		OracleTimeout:     getEnvDuration("ORACLE_TIMEOUT", 20*time.Second),

		MaxRounds: getEnvInt("MAX_ROUNDS", 3),

		SessionStore:  getEnv("SESSION_STORE", "memory"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("⚠️ Valor inválido para %s: %q, usando %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("⚠️ Valor inválido para %s: %q, usando %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("⚠️ Valor inválido para %s: %q, usando %v", key, value, defaultValue)
	}
	return defaultValue
}
