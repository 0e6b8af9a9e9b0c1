package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Backends de cache persistente suportados.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config armazena todas as configurações do cliente FarmMarket.
type Config struct {
	// Geral
	Environment string
	LogLevel    string

	// Armazenamento remoto (API REST)
	APIBaseURL  string
	HTTPTimeout time.Duration // aplicado a cada chamada remota

	// Cache persistente local
	CacheBackend string // "file" | "memory" | "redis"
	CacheDir     string // usado pelo backend de arquivo
	RedisAddr    string // usado pelo backend redis
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente,
// com padrões utilizáveis em desenvolvimento (json-server local).
func LoadConfig() *Config {
	return &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:3001"),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT_SEC", 5) * time.Second,

		CacheBackend: getEnv("CACHE_BACKEND", CacheBackendFile),
		CacheDir:     getEnv("CACHE_DIR", ".farmmarket"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
	}
}

// Funções auxiliares

// getEnv lê a variável de ambiente ou retorna o valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável numérica e a retorna como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: valor de %s ('%s') não é um inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}
