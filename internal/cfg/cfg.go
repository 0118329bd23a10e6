package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/DRSN-tech/catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config — конфигурация catalog-сервиса (GraphQL поверх PostgreSQL).
type Config struct {
	Http       *HTTPConfig
	Grpc       *GRPCConfig
	Db         *PGDBCfg
	Storage    *StorageCfg
	Validation *ValidationCfg
}

// GatewayConfig — конфигурация REST-шлюза.
type GatewayConfig struct {
	Http     *HTTPConfig
	Upstream *UpstreamCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MaxConns      int32
	MigrationsDir string
}

type StorageCfg struct {
	Driver                string // postgres | memory
	SearchCaseInsensitive bool
}

// ValidationCfg — необязательные проверки входных данных. По умолчанию выключены.
type ValidationCfg struct {
	NonNegativePrice bool
	MaxNameLength    int
}

// UpstreamCfg описывает подключение шлюза к catalog-сервису.
type UpstreamCfg struct {
	GraphQLURL string
	GrpcAddr   string // адрес gRPC health-сервиса; пустой — проверка отключена
	Timeout    time.Duration
}

// LoadCatalog безопасно загружает конфигурацию catalog-сервиса и возвращает ошибку в случае неудачи.
func LoadCatalog(log logger.Logger) (*Config, error) {
	loadDotEnv(log)

	storage, err := loadStorageCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var db *PGDBCfg
	if storage.Driver == StorageDriverPostgres {
		db, err = loadPGDBCfg(log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	http, err := loadHTTPConfig(log, "8081")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	validation, err := loadValidationCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:       http,
		Grpc:       loadGRPCConfig(),
		Db:         db,
		Storage:    storage,
		Validation: validation,
	}, nil
}

// LoadGateway загружает конфигурацию REST-шлюза.
func LoadGateway(log logger.Logger) (*GatewayConfig, error) {
	loadDotEnv(log)

	http, err := loadHTTPConfig(log, "8080")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	upstream, err := loadUpstreamCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &GatewayConfig{
		Http:     http,
		Upstream: upstream,
	}, nil
}

// loadDotEnv подгружает .env, если он есть. Переменные окружения процесса имеют приоритет.
func loadDotEnv(log logger.Logger) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warnf("failed to load .env: %v", err)
		}
		return
	}

	log.Infof(".env loaded")
}

func loadHTTPConfig(log logger.Logger, defaultPort string) (*HTTPConfig, error) {
	const (
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost          = "localhost"
		defaultPort          = "5432"
		defaultSSLMode       = "disable"
		defaultMaxConns      = 10
		defaultMigrationsDir = "db/migrations"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	maxConns, err := parseIntEnv("POSTGRES_MAX_CONNS", defaultMaxConns)
	if err != nil {
		log.Errorf(err, "invalid POSTGRES_MAX_CONNS")
		return nil, err
	}

	return &PGDBCfg{
		Host:          getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:          getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:          user,
		Password:      password,
		DBName:        dbName,
		SSLMode:       getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MaxConns:      int32(maxConns),
		MigrationsDir: getEnvOrDefault("MIGRATIONS_DIR", defaultMigrationsDir),
	}, nil
}

func loadStorageCfg(log logger.Logger) (*StorageCfg, error) {
	driver := strings.ToLower(getEnvOrDefault("STORAGE_DRIVER", StorageDriverPostgres))
	if driver != StorageDriverPostgres && driver != StorageDriverMemory {
		err := e.Wrap(driver, e.ErrUnknownStorageDriver)
		log.Errorf(err, "invalid STORAGE_DRIVER")
		return nil, err
	}

	caseInsensitive, err := parseBoolEnv("CATALOG_SEARCH_CASE_INSENSITIVE", false)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_SEARCH_CASE_INSENSITIVE")
		return nil, err
	}

	return &StorageCfg{
		Driver:                driver,
		SearchCaseInsensitive: caseInsensitive,
	}, nil
}

func loadValidationCfg(log logger.Logger) (*ValidationCfg, error) {
	nonNegative, err := parseBoolEnv("CATALOG_VALIDATE_NON_NEGATIVE_PRICE", false)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_VALIDATE_NON_NEGATIVE_PRICE")
		return nil, err
	}

	maxNameLength, err := parseIntEnv("CATALOG_MAX_NAME_LENGTH", 0)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_MAX_NAME_LENGTH")
		return nil, err
	}

	return &ValidationCfg{
		NonNegativePrice: nonNegative,
		MaxNameLength:    maxNameLength,
	}, nil
}

func loadUpstreamCfg(log logger.Logger) (*UpstreamCfg, error) {
	const (
		defaultGraphQLURL = "http://localhost:8081/graphql"
		defaultTimeout    = 10 * time.Second
	)

	timeout, err := parseDurationEnv("CATALOG_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_TIMEOUT")
		return nil, err
	}

	return &UpstreamCfg{
		GraphQLURL: getEnvOrDefault("CATALOG_GRAPHQL_URL", defaultGraphQLURL),
		GrpcAddr:   getEnv("CATALOG_GRPC_ADDR"),
		Timeout:    timeout,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return intValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	boolValue, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return boolValue, nil
}
