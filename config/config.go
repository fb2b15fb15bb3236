package config

import (
	"os"
	"strconv"

	"go-event-registry/internal/validation"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Registry RegistryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type ServerConfig struct {
	Port string
	// Storage 為 "memory" 時不連 Postgres/Redis，全部使用記憶體實作
	Storage string
}

type RegistryConfig struct {
	// OwnerID 初始化時固定的擁有者身份，之後不可轉移
	OwnerID string
	// SingleEventPerCaller 為 true 時每個身份最多持有一個未關閉的活動
	SingleEventPerCaller bool
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Server:   GetServerConfig(),
		Registry: GetRegistryConfig(),
	}
	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Server:   ServerConfig{Port: "8080", Storage: "memory"},
		Registry: RegistryConfig{OwnerID: "owner", SingleEventPerCaller: false},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnv("SERVER_PORT", "8080"),
		Storage: getEnv("STORAGE", "postgres"),
	}
}

func GetRegistryConfig() RegistryConfig {
	single, err := strconv.ParseBool(getEnv("SINGLE_EVENT_PER_CALLER", "false"))
	if err != nil {
		panic(err)
	}

	return RegistryConfig{
		OwnerID:              getEnv("OWNER_ID", "owner"),
		SingleEventPerCaller: single,
	}
}

// DefaultEventNameConfig 活動名稱的預設規則：
// 小寫字母、數字與連字號，長度 3 到 20
func DefaultEventNameConfig() validation.Config {
	return validation.Config{
		ValidRange: validation.CharRange{Low: 0x2d, High: 0x7a},
		InvalidRanges: []validation.CharRange{
			{Low: 0x2e, High: 0x2f},
			{Low: 0x3a, High: 0x60},
		},
		MinLength: 3,
		MaxLength: 20,
	}
}

// DefaultUsernameConfig 使用者名稱的預設規則：
// 大小寫字母與數字，長度上限 20，不檢查下限
func DefaultUsernameConfig() validation.Config {
	return validation.Config{
		ValidRange: validation.CharRange{Low: 0x30, High: 0x7a},
		InvalidRanges: []validation.CharRange{
			{Low: 0x3a, High: 0x40},
			{Low: 0x5b, High: 0x60},
		},
		MaxLength: 20,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
